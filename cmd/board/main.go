// 掲示板サービスのエントリポイント。
// 会員登録・ログインと、投稿およびコメントのCRUDを提供する。
package main

import "github.com/nao1215/board/cmd/board/commands"

func main() {
	commands.Execute()
}
