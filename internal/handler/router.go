package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/notewise/internal/middleware"
)

// DBPinger はヘルスチェックでのDB疎通確認に必要なインターフェース。
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	MetricsRecorder   middleware.HTTPMetricsRecorder

	// サービス
	AuthService     AuthServiceInterface
	UserService     UserServiceInterface
	NoteCardService NoteCardServiceInterface

	// インフラルート
	DB             DBPinger
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 登録・ログイン・カード閲覧は認証不要。トークンリフレッシュと
// アクティビティ記録ルートはBearerトークン認証の内側に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	cardHandler := NewNoteCardHandler(deps.NoteCardService)

	// --- 認証不要のルート ---

	r.Post("/api/auth/login", authHandler.Login)

	r.Post("/api/users", userHandler.Register)
	r.Get("/api/users", userHandler.List)
	r.Get("/api/users/{id}", userHandler.Get)

	r.Post("/api/cards", cardHandler.Create)
	r.Get("/api/cards/{clef}", cardHandler.ListByClef)

	// --- 認証が必要なルート ---
	// /api/users配下は公開ルートと混在するため、サブルーターのMountではなく
	// 直接登録でメソッド単位に認証を適用する。
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))

		r.Post("/api/auth/refresh", authHandler.Refresh)

		r.Delete("/api/users/{id}", userHandler.Withdraw)

		// ログイン記録
		r.Post("/api/users/user-log", userHandler.RecordLogin)
		r.Get("/api/users/user-log/{id}", userHandler.ListLogins)

		// 練習テスト
		r.Post("/api/users/practice-test", userHandler.RecordPracticeScore)
		r.Get("/api/users/practice-tests/{id}", userHandler.ListPracticeScores)

		// 本番テスト
		r.Post("/api/users/test", userHandler.RecordTestScore)
		r.Get("/api/users/test/{id}", userHandler.ListTestScores)
	})

	// --- インフラルート ---

	if deps.DB != nil {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			if err := deps.DB.PingContext(req.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
	}

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
