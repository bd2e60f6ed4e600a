// Package db はscorehubサービスのデータベースアクセス層を提供する。
//
// database/sqlの上にクエリ実行オブジェクト（Queries）を構成し、
// usersテーブルとscoresテーブルへのパラメータ化された読み書きを公開する。
// ビジネスロジックは持たない。WithTxでトランザクション内での実行に切り替える。
package db
