package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type userUpdateRequest struct {
	Username     string `json:"username" binding:"omitempty,min=3,max=32"`
	Password     string `json:"password" binding:"omitempty,min=8"`
	PrevPassword string `json:"prevPassword" binding:"required"`
}

// handleUserUpdate changes profile fields and reissues both tokens, so the
// session carries the new username immediately.
func (s *Server) handleUserUpdate(c *gin.Context) {
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	user, pair, err := s.users.Update(c.Request.Context(), identity(c).UserID, req.Username, req.Password, req.PrevPassword)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, sessionResponse{
		AccessToken:     pair.AccessToken,
		AccessExpiresAt: pair.AccessExpiresAt,
		User:            toUserResponse(user),
	})
}

type userDeleteRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleUserDelete(c *gin.Context) {
	var req userDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.users.Delete(c.Request.Context(), identity(c).UserID, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	s.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

type recoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (s *Server) handleRecover(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.users.Recover(c.Request.Context(), req.Email); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRecoverCheck(c *gin.Context) {
	user, err := s.users.RecoverCheck(c.Request.Context(), c.Query("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

type recoverPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *Server) handleRecoverPassword(c *gin.Context) {
	var req recoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.users.RecoverPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
