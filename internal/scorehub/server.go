package scorehub

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	scoredb "github.com/nao1215/scorehub/internal/scorehub/db"
	"github.com/nao1215/scorehub/pkg/middleware"
)

// Server はスコア管理サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はクエリ実行オブジェクト。
	queries *scoredb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
}

// NewServer は新しいスコアサーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
// _txlock=immediate により書き込みトランザクションはBEGIN時点で
// 書き込みロックを取得し、同一キーへの同時送信を直列化する。
func NewServer(port string) (*Server, error) {
	dbPath := getEnvOr("DB_PATH", "/data/scorehub.db")
	dsn := fmt.Sprintf("%s?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:    router,
		port:      port,
		queries:   scoredb.New(sqlDB),
		db:        sqlDB,
		jwtSecret: jwtSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証・暗黙登録（認証不要）
	s.router.POST("/auth", s.handleAuth())

	// 認証必須のエンドポイント
	protected := s.router.Group("/")
	protected.Use(middleware.JWTAuth(s.jwtSecret))
	{
		// スコア一覧取得（?game=でゲーム指定）
		protected.GET("/scores", s.handleListScores())
		// スコア送信（ベストスコアupsert）
		protected.POST("/scores", s.handleSubmitScore())
		// 認証済みクレームの確認
		protected.GET("/me", s.handleMe())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "scorehub"})
	})
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
