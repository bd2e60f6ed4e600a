package scorehub

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/scorehub/pkg/middleware"
)

// authRequest は認証・暗黙登録リクエストのJSON構造。
type authRequest struct {
	// Username はユーザー名。
	Username string `json:"username"`
}

// handleAuth は認証・暗黙登録を処理するハンドラを返す。
// 未登録のユーザー名であれば新規ユーザーを作成し（暗黙登録）、
// ユーザーIDとユーザー名を埋め込んだJWTトークンを発行する。
// ユーザー行そのものはレスポンスに含めない。
func (s *Server) handleAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		if req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "usernameは必須です"})
			return
		}

		// 一意制約付きINSERTで登録する。既存ユーザーなら何も起こらないため、
		// 同一ユーザー名への同時初回登録でも行は1つしか作られない。
		if err := s.queries.CreateUser(c.Request.Context(), req.Username); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
			log.Printf("ユーザー登録エラー (request_id=%s): %v", middleware.GetRequestID(c), err)
			return
		}

		user, err := s.queries.GetUserByUsername(c.Request.Context(), req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
			log.Printf("ユーザー取得エラー (request_id=%s): %v", middleware.GetRequestID(c), err)
			return
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, user.ID, user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
			log.Printf("JWT生成エラー (request_id=%s): %v", middleware.GetRequestID(c), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// handleMe は認証済みユーザーのクレームを返すハンドラを返す。
// 認証ゲートの動作確認用で、ストアへのアクセスは行わない。
func (s *Server) handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  middleware.GetUserID(c),
			"username": middleware.GetUsername(c),
		})
	}
}
