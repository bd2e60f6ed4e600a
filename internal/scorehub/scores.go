package scorehub

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	scoredb "github.com/nao1215/scorehub/internal/scorehub/db"
	"github.com/nao1215/scorehub/pkg/middleware"
)

// submitScoreRequest はスコア送信リクエストのJSON構造。
// 数値フィールドはポインタ型で受け取り、「0が送信された」と
// 「フィールドが送信されなかった」を区別する。0は有効な値である。
type submitScoreRequest struct {
	// Game はゲーム名。必須。
	Game *string `json:"game"`
	// Agent はエージェント名。必須。
	Agent *string `json:"agent"`
	// Time は記録タイム。必須。0も有効。
	Time *float64 `json:"time"`
	// Mistakes はミス回数。必須。0も有効。
	Mistakes *int64 `json:"mistakes"`
	// WordSet は単語セット識別子。省略可能で、省略時は空文字列として扱う。
	WordSet *string `json:"wordSet"`
}

// scoreRecord はスコアレコードのJSONレスポンス構造。
type scoreRecord struct {
	// Agent はエージェント名。
	Agent string `json:"agent"`
	// Time は記録タイム。
	Time float64 `json:"time"`
	// Mistakes はミス回数。
	Mistakes int64 `json:"mistakes"`
	// WordSet は単語セット識別子。
	WordSet string `json:"wordSet"`
}

// toScoreRecord はDB行をJSONレスポンスに変換する。
func toScoreRecord(s scoredb.Score) scoreRecord {
	return scoreRecord{
		Agent:    s.Agent,
		Time:     s.Time,
		Mistakes: s.Mistakes,
		WordSet:  s.WordSet,
	}
}

// groupedScores はゲーム名からスコアレコード列へのマッピング。
// JSONオブジェクトのキーをゲームの初出順で出力するため、
// Goのマップではなく出現順リストを併せて保持する。
type groupedScores struct {
	// order はゲーム名の初出順。
	order []string
	// groups はゲーム名ごとのスコアレコード列。
	groups map[string][]scoreRecord
}

// newGroupedScores は空のグルーピングを生成する。
func newGroupedScores() *groupedScores {
	return &groupedScores{groups: make(map[string][]scoreRecord)}
}

// add はレコードをゲームのグループに追加する。
// 初めて現れたゲーム名は出現順リストの末尾に記録する。
func (g *groupedScores) add(gameName string, rec scoreRecord) {
	if _, ok := g.groups[gameName]; !ok {
		g.order = append(g.order, gameName)
	}
	g.groups[gameName] = append(g.groups[gameName], rec)
}

// MarshalJSON はゲームの初出順を保ったJSONオブジェクトを生成する。
func (g *groupedScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, gameName := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(gameName)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		records, err := json.Marshal(g.groups[gameName])
		if err != nil {
			return nil, err
		}
		buf.Write(records)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// handleListScores はスコア一覧取得を処理するハンドラを返す。
// クエリパラメータgameが指定された場合はそのゲームのレコードを
// 挿入順のフラットな配列で返す。省略された場合は全レコードを
// ゲーム名でグルーピングし、ゲームの初出順を保ったオブジェクトで返す。
func (s *Server) handleListScores() gin.HandlerFunc {
	return func(c *gin.Context) {
		gameName := c.Query("game")

		if gameName != "" {
			scores, err := s.queries.ListScoresByGame(c.Request.Context(), gameName)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
				log.Printf("スコア一覧取得エラー (request_id=%s): %v", middleware.GetRequestID(c), err)
				return
			}

			records := make([]scoreRecord, 0, len(scores))
			for _, score := range scores {
				records = append(records, toScoreRecord(score))
			}
			c.JSON(http.StatusOK, records)
			return
		}

		scores, err := s.queries.ListScores(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
			log.Printf("スコア一覧取得エラー (request_id=%s): %v", middleware.GetRequestID(c), err)
			return
		}

		grouped := newGroupedScores()
		for _, score := range scores {
			grouped.add(score.GameName, toScoreRecord(score))
		}
		c.JSON(http.StatusOK, grouped)
	}
}

// submitOutcome はスコアupsertの結果種別。
type submitOutcome int

const (
	// outcomeCreated は同一性キーへの初回送信でレコードが作成されたことを示す。
	outcomeCreated submitOutcome = iota
	// outcomeUpdated はより良いタイムで既存レコードが上書きされたことを示す。
	outcomeUpdated
	// outcomeRejected は既存の記録を上回れず、ストアが変更されなかったことを示す。
	outcomeRejected
)

// handleSubmitScore はスコア送信を処理するハンドラを返す。
// 必須フィールドの存在を検証したうえでベストスコアupsertを実行し、
// 結果種別に応じたメッセージとレコードを返す。
func (s *Server) handleSubmitScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		// 存在ベースの検証。time=0やmistakes=0は有効な送信値であり、
		// フィールド自体が欠けている場合のみ拒否する。
		if req.Game == nil || *req.Game == "" ||
			req.Agent == nil || *req.Agent == "" ||
			req.Time == nil || req.Mistakes == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "game、agent、time、mistakesは必須です"})
			return
		}

		// wordSet省略時は空文字列を番兵値として同一性キーに用いる。
		wordSet := ""
		if req.WordSet != nil {
			wordSet = *req.WordSet
		}

		outcome, record, err := s.upsertScore(c.Request.Context(), scoredb.CreateScoreParams{
			GameName: *req.Game,
			Agent:    *req.Agent,
			Time:     *req.Time,
			Mistakes: *req.Mistakes,
			WordSet:  wordSet,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
			log.Printf("スコアupsertエラー (request_id=%s): %v", middleware.GetRequestID(c), err)
			return
		}

		switch outcome {
		case outcomeCreated:
			c.JSON(http.StatusOK, gin.H{"message": "記録を作成しました", "record": record})
		case outcomeUpdated:
			c.JSON(http.StatusOK, gin.H{"message": "記録を更新しました", "record": record})
		case outcomeRejected:
			c.JSON(http.StatusOK, gin.H{"message": "記録を更新できませんでした", "record": record})
		}
	}
}

// upsertScore はベストスコアupsertを1つのトランザクション内で実行する。
// 同一性キーに対応するレコードが無ければ挿入し、送信されたタイムが
// 既存より厳密に小さければ上書きし、そうでなければ何も変更しない。
// 読み取りから書き込みまでを書き込みロック付きトランザクションで囲むことで、
// 同一キーへの同時送信が最良でない値を残す競合を防ぐ。
func (s *Server) upsertScore(ctx context.Context, arg scoredb.CreateScoreParams) (submitOutcome, scoreRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, scoreRecord{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)

	existing, err := qtx.GetScoreByKey(ctx, scoredb.GetScoreByKeyParams{
		GameName: arg.GameName,
		Agent:    arg.Agent,
		WordSet:  arg.WordSet,
	})
	if errors.Is(err, sql.ErrNoRows) {
		// 初回送信。新規レコードを挿入する。
		if err := qtx.CreateScore(ctx, arg); err != nil {
			return 0, scoreRecord{}, fmt.Errorf("スコア挿入に失敗: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, scoreRecord{}, fmt.Errorf("コミットに失敗: %w", err)
		}
		return outcomeCreated, scoreRecord{
			Agent:    arg.Agent,
			Time:     arg.Time,
			Mistakes: arg.Mistakes,
			WordSet:  arg.WordSet,
		}, nil
	}
	if err != nil {
		return 0, scoreRecord{}, fmt.Errorf("スコア取得に失敗: %w", err)
	}

	if arg.Time < existing.Time {
		// より良い記録。idを保ったままtimeとmistakesを上書きする。
		// UPDATE側のtime > ?条件が二重の防壁として単調減少を保証する。
		if _, err := qtx.UpdateScoreIfBetter(ctx, scoredb.UpdateScoreIfBetterParams{
			Time:     arg.Time,
			Mistakes: arg.Mistakes,
			ID:       existing.ID,
		}); err != nil {
			return 0, scoreRecord{}, fmt.Errorf("スコア更新に失敗: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, scoreRecord{}, fmt.Errorf("コミットに失敗: %w", err)
		}
		return outcomeUpdated, scoreRecord{
			Agent:    arg.Agent,
			Time:     arg.Time,
			Mistakes: arg.Mistakes,
			WordSet:  arg.WordSet,
		}, nil
	}

	// 記録未達。ストアは変更せず既存レコードをそのまま返す。
	if err := tx.Commit(); err != nil {
		return 0, scoreRecord{}, fmt.Errorf("コミットに失敗: %w", err)
	}
	return outcomeRejected, toScoreRecord(existing), nil
}
