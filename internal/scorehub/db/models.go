package db

import "time"

// User はusersテーブルの1行を表す。
// 初回認証時に暗黙登録され、以降このシステムからは更新も削除もされない。
type User struct {
	// ID はユーザーの一意識別子（自動採番）。
	ID int64
	// Username はユーザー名。テーブル全体で一意。
	Username string
	// CreatedAt は登録日時。
	CreatedAt time.Time
}

// Score はscoresテーブルの1行を表す。
// 同一性キー (game_name, agent, word_set) ごとに最大1行が存在し、
// timeはそのキーに対して送信された最小値を保持する（小さいほど良い）。
type Score struct {
	// ID はスコアレコードの一意識別子（自動採番）。
	ID int64
	// GameName はスコアが属するゲーム名。
	GameName string
	// Agent はスコアを記録したエージェント名。
	Agent string
	// Time は記録タイム。小さいほど良い。
	Time float64
	// Mistakes はミス回数。
	Mistakes int64
	// WordSet は単語セットの識別子。未指定の場合は空文字列。
	WordSet string
}
