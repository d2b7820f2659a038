// Package httpapi is the HTTP surface of the board: a gin engine with the
// route table, the token guards, and the JSON error contract.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/config"
	"github.com/akulikov/boardd/internal/server/services"
)

type Server struct {
	config   *config.Config
	logger   logging.Logger
	tokens   *auth.TokenService
	auth     *services.AuthService
	users    *services.UserService
	comms    *services.CommunityService
	posts    *services.PostService
	comments *services.CommentService
	engine   *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger, tokens *auth.TokenService,
	authSvc *services.AuthService, userSvc *services.UserService, commSvc *services.CommunityService,
	postSvc *services.PostService, commentSvc *services.CommentService) *Server {

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		config:   cfg,
		logger:   logger,
		tokens:   tokens,
		auth:     authSvc,
		users:    userSvc,
		comms:    commSvc,
		posts:    postSvc,
		comments: commentSvc,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Handler exposes the engine for an http.Server and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/healthz", s.handleHealthz)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.GET("/email/send", s.handleSendActivation)
		authGroup.POST("/email/activate", s.handleActivate)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/refresh", s.RefreshGuard(), s.handleRefresh)
		authGroup.GET("/logout", s.AccessGuard(), s.RequireAuth(), s.handleLogout)
	}

	userGroup := r.Group("/user")
	{
		userGroup.PATCH("", s.AccessGuard(), s.RequireAuth(), s.handleUserUpdate)
		userGroup.DELETE("", s.AccessGuard(), s.RequireAuth(), s.handleUserDelete)
		userGroup.POST("/recover", s.handleRecover)
		userGroup.GET("/recover", s.handleRecoverCheck)
		userGroup.POST("/recover/password", s.handleRecoverPassword)
	}

	commGroup := r.Group("/community", s.AccessGuard())
	{
		commGroup.POST("", s.handleCommunityCreate)
		commGroup.GET("", s.handleCommunityList)
		commGroup.GET("/:id", s.handleCommunityGet)
		commGroup.PATCH("/:id", s.handleCommunityUpdate)
		commGroup.DELETE("/:id", s.handleCommunityDelete)
		commGroup.GET("/:id/post", s.handlePostList)
	}

	postGroup := r.Group("/api/post", s.AccessGuard())
	{
		postGroup.POST("", s.handlePostCreate)
		postGroup.GET("/:id", s.handlePostGet)
		postGroup.PATCH("/:id", s.handlePostUpdate)
		postGroup.DELETE("/:id", s.handlePostDelete)
		postGroup.POST("/:id/check", s.handlePostCheckPassword)
		postGroup.POST("/:id/rate", s.handlePostRate)
	}

	commentGroup := r.Group("/api/comment", s.AccessGuard())
	{
		commentGroup.POST("", s.handleCommentCreate)
		commentGroup.GET("", s.handleCommentList)
		commentGroup.PATCH("/:id", s.handleCommentUpdate)
		commentGroup.DELETE("/:id", s.handleCommentDelete)
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
