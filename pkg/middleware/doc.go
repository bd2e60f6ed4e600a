// Package middleware はHTTPサーバーで使用する共通のGinミドルウェアを提供する。
//
// JWT認証（発行・検証）、CORS、パニックリカバリー、リクエストID付与を含む。
// JWT検証ではトークン未提示（401）とトークン無効（403）を区別する。
package middleware
