// Package scorehub はゲームのベストスコアを管理するHTTPサーバーの内部実装を提供する。
//
// ユーザー名のみのログイン（暗黙登録）によるJWT発行、ベストスコアのupsert
// （挿入・より良い記録での上書き・記録未達時の拒否）、ゲーム別のスコア取得を
// 担当する。スコアの読み取り・書き込みルートはJWT検証ミドルウェアで保護される。
package scorehub
