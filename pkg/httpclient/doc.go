// Package httpclient はboardサービスのAPIを呼び出すためのJSON HTTPクライアントを提供する。
//
// CLIのヘルスチェックなど、サービス外部からAPIを叩く用途で使用する。
package httpclient
