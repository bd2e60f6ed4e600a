package db

import (
	"context"
)

const createUser = `
INSERT INTO users (username) VALUES (?)
ON CONFLICT (username) DO NOTHING
`

// CreateUser は指定されたユーザー名のユーザーを登録する。
// 既に同名のユーザーが存在する場合は何もしない（一意制約による競合解決）。
func (q *Queries) CreateUser(ctx context.Context, username string) error {
	_, err := q.db.ExecContext(ctx, createUser, username)
	return err
}

const getUserByUsername = `
SELECT id, username, created_at FROM users WHERE username = ?
`

// GetUserByUsername はユーザー名でユーザーを1件取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.CreatedAt)
	return u, err
}

const getScoreByKey = `
SELECT id, game_name, agent, time, mistakes, word_set FROM scores
WHERE game_name = ? AND agent = ? AND word_set = ?
`

// GetScoreByKeyParams はGetScoreByKeyのパラメータ。
// 3つのフィールドがスコアの同一性キーを構成する。
type GetScoreByKeyParams struct {
	GameName string
	Agent    string
	WordSet  string
}

// GetScoreByKey は同一性キー (game_name, agent, word_set) に対応する
// スコアレコードを取得する。存在しない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetScoreByKey(ctx context.Context, arg GetScoreByKeyParams) (Score, error) {
	row := q.db.QueryRowContext(ctx, getScoreByKey, arg.GameName, arg.Agent, arg.WordSet)
	var s Score
	err := row.Scan(&s.ID, &s.GameName, &s.Agent, &s.Time, &s.Mistakes, &s.WordSet)
	return s, err
}

const createScore = `
INSERT INTO scores (game_name, agent, time, mistakes, word_set)
VALUES (?, ?, ?, ?, ?)
`

// CreateScoreParams はCreateScoreのパラメータ。
type CreateScoreParams struct {
	GameName string
	Agent    string
	Time     float64
	Mistakes int64
	WordSet  string
}

// CreateScore は新しいスコアレコードを挿入する。
func (q *Queries) CreateScore(ctx context.Context, arg CreateScoreParams) error {
	_, err := q.db.ExecContext(ctx, createScore, arg.GameName, arg.Agent, arg.Time, arg.Mistakes, arg.WordSet)
	return err
}

const updateScoreIfBetter = `
UPDATE scores SET time = ?, mistakes = ?
WHERE id = ? AND time > ?
`

// UpdateScoreIfBetterParams はUpdateScoreIfBetterのパラメータ。
type UpdateScoreIfBetterParams struct {
	Time     float64
	Mistakes int64
	ID       int64
}

// UpdateScoreIfBetter は既存レコードのtimeとmistakesを上書きする。
// 格納済みのtimeが新しい値より大きい場合のみ更新する条件付きUPDATEで、
// 更新された行数を返す。タイムの単調減少はこの条件が保証する。
func (q *Queries) UpdateScoreIfBetter(ctx context.Context, arg UpdateScoreIfBetterParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateScoreIfBetter, arg.Time, arg.Mistakes, arg.ID, arg.Time)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listScoresByGame = `
SELECT id, game_name, agent, time, mistakes, word_set FROM scores
WHERE game_name = ?
ORDER BY id
`

// ListScoresByGame は指定されたゲームのスコアレコードを挿入順に取得する。
func (q *Queries) ListScoresByGame(ctx context.Context, gameName string) ([]Score, error) {
	rows, err := q.db.QueryContext(ctx, listScoresByGame, gameName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.ID, &s.GameName, &s.Agent, &s.Time, &s.Mistakes, &s.WordSet); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

const listScores = `
SELECT id, game_name, agent, time, mistakes, word_set FROM scores
ORDER BY id
`

// ListScores は全ゲームのスコアレコードを挿入順に取得する。
func (q *Queries) ListScores(ctx context.Context) ([]Score, error) {
	rows, err := q.db.QueryContext(ctx, listScores)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.ID, &s.GameName, &s.Agent, &s.Time, &s.Mistakes, &s.WordSet); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
