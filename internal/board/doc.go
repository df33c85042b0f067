// Package board は掲示板サービスの内部実装を提供する。
//
// ユーザー登録とログイン、投稿とコメントのCRUDを担当する。
// 投稿・コメントへの変更はすべて認証ゲートを通過し、
// 要求者がリソースの所有者である場合にのみ適用される。
//
// 変更操作の処理順序は固定されている:
//   - 認証（middleware.RequireIdentity）
//   - 入力検証
//   - リソースの取得
//   - 所有者チェック
//   - トランザクション内での変更とアクティビティの記録
package board
