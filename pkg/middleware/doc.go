// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの発行と検証、認証ゲート、パニックリカバリ、
// CORS設定、ログインのレート制限を含む。
package middleware
