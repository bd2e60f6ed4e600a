package scorehub

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。
const schema = `
CREATE TABLE IF NOT EXISTS users (
    -- ユーザーの一意識別子
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    -- ユーザー名。暗黙登録の競合解決はこの一意制約に依存する
    username TEXT NOT NULL UNIQUE,
    -- 登録日時
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS scores (
    -- スコアレコードの一意識別子
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    -- ゲーム名
    game_name TEXT NOT NULL,
    -- エージェント名
    agent TEXT NOT NULL,
    -- 記録タイム。小さいほど良い
    time REAL NOT NULL,
    -- ミス回数
    mistakes INTEGER NOT NULL,
    -- 単語セット識別子。未指定の場合は空文字列
    word_set TEXT NOT NULL DEFAULT ''
);

-- 同一性キーごとに最大1行であることを保証するインデックス。
CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_identity
    ON scores(game_name, agent, word_set);

-- ゲーム名での検索を高速化するインデックス。
CREATE INDEX IF NOT EXISTS idx_scores_game_name
    ON scores(game_name);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
