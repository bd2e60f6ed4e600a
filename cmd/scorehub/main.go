// スコア管理サービスのエントリポイント。
// ユーザー名のみのログインによるJWT発行と、ゲームごとのベストスコアの
// 記録・取得を担当する。設定は環境変数（PORT、JWT_SECRET、DB_PATH、
// FRONTEND_URL）から起動時に一度だけ読み込む。
package main

import (
	"log"
	"os"

	"github.com/nao1215/scorehub/internal/scorehub"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server, err := scorehub.NewServer(port)
	if err != nil {
		log.Fatalf("サーバーの初期化に失敗: %v", err)
	}

	log.Printf("scorehubサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
