package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postCreateRequest struct {
	CommunityID int64  `json:"communityId" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// handlePostCreate accepts both ownership modes: a logged-in caller posts
// under their account and DisplayName/Password are ignored; an anonymous
// caller must supply both.
func (s *Server) handlePostCreate(c *gin.Context) {
	var req postCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	post, err := s.posts.Create(c.Request.Context(), identity(c), req.CommunityID, req.Title, req.Content, req.DisplayName, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (s *Server) handlePostGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	post, err := s.posts.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

type postUpdateRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Password string `json:"password"`
}

func (s *Server) handlePostUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	post, err := s.posts.Update(c.Request.Context(), identity(c), id, req.Password, req.Title, req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

type secretRequest struct {
	Password string `json:"password"`
}

func (s *Server) handlePostDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	// body is optional: members delete by identity alone
	var req secretRequest
	_ = c.ShouldBindJSON(&req)

	if err := s.posts.Delete(c.Request.Context(), identity(c), id, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handlePostCheckPassword lets the frontend pre-validate an anonymous
// secret before opening the edit form. The real gate stays in the mutation
// endpoints.
func (s *Server) handlePostCheckPassword(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req secretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	ok, err := s.posts.CheckPassword(c.Request.Context(), id, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": ok})
}

type rateRequest struct {
	Plus *bool `json:"plus" binding:"required"`
}

func (s *Server) handlePostRate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.posts.Rate(c.Request.Context(), identity(c), id, *req.Plus); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
