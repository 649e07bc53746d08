package server

import (
	"net/http"

	"github.com/ecotrade/marketplace/internal/config"
	"github.com/ecotrade/marketplace/internal/handler"
	"github.com/ecotrade/marketplace/internal/mail"
	appmw "github.com/ecotrade/marketplace/internal/middleware"
	"github.com/ecotrade/marketplace/internal/relay"
	"github.com/ecotrade/marketplace/internal/repository"
	"github.com/ecotrade/marketplace/internal/service"
	"github.com/ecotrade/marketplace/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e        *echo.Echo
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	txRepo   repository.TransactionRepository
	chatRepo repository.ChatRepository
	sha      string
	build    string
}

func New(db *gorm.DB, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	chatRepo := repository.NewChatRepository(db)

	images := storage.NewDiskStore(cfg.UploadDir)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	postSvc := service.NewPostService(postRepo, images)
	txSvc := service.NewTransactionService(txRepo, postRepo)
	chatSvc := service.NewChatService(chatRepo, postRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	postHandler := handler.NewPostHandler(postSvc)
	txHandler := handler.NewTransactionHandler(txSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	contactHandler := handler.NewContactHandler(mail.NewSMTPMailer(cfg))

	hub := relay.NewHub(chatSvc, cfg.AllowedOrigins)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})
	e.Static("/uploads", cfg.UploadDir)
	e.GET("/ws", hub.HandleWS)

	api := e.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)

	api.POST("/contact", contactHandler.Send)

	api.POST("/posts", postHandler.Create, authMw.RequireAuth)
	api.GET("/posts/my", postHandler.ListMine, authMw.RequireAuth)
	api.GET("/posts/others", postHandler.ListOthers, authMw.RequireAuth)
	api.GET("/posts/:postId", postHandler.Get, authMw.RequireAuth)
	api.PUT("/posts/:postId", postHandler.Update, authMw.RequireAuth)
	api.DELETE("/posts/:id", postHandler.Delete, authMw.RequireAuth)

	api.POST("/transactions", txHandler.Create, authMw.RequireAuth)
	api.GET("/transactions/seller/:sellerId", txHandler.ListBySeller, authMw.RequireAuth)
	api.GET("/transactions/buyer/:buyerId", txHandler.ListByBuyer, authMw.RequireAuth)
	api.PATCH("/transactions/:id/status", txHandler.UpdateStatus, authMw.RequireAuth)
	api.DELETE("/transactions/:id", txHandler.Delete, authMw.RequireAuth)

	api.POST("/chats", chatHandler.GetOrCreate, authMw.RequireAuth)
	api.GET("/chats/:chatId/messages", chatHandler.ListMessages, authMw.RequireAuth)
	api.GET("/chats/user/:userId", chatHandler.ListByUser, authMw.RequireAuth)

	return &Server{
		e:        e,
		userRepo: userRepo,
		postRepo: postRepo,
		txRepo:   txRepo,
		chatRepo: chatRepo,
		sha:      sha,
		build:    buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the database once the async connect in main finishes.
func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.postRepo.SetDB(db)
	s.txRepo.SetDB(db)
	s.chatRepo.SetDB(db)
}
