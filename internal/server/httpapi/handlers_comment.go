package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidPostID = errors.New("invalid postId")

type commentCreateRequest struct {
	PostID      int64  `json:"postId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (s *Server) handleCommentCreate(c *gin.Context) {
	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	comment, err := s.comments.Create(c.Request.Context(), identity(c), req.PostID, req.Content, req.DisplayName, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// handleCommentList serves /api/comment?postId=N&page=M.
func (s *Server) handleCommentList(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Query("postId"), 10, 64)
	if err != nil || postID <= 0 {
		s.badRequest(c, errInvalidPostID)
		return
	}

	page := queryPage(c)
	list, total, err := s.comments.ListByPost(c.Request.Context(), postID, page)
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]commentResponse, 0, len(list))
	for i := range list {
		items = append(items, toCommentResponse(&list[i]))
	}
	c.JSON(http.StatusOK, pagedResponse[commentResponse]{Items: items, Total: total, Page: page})
}

type commentUpdateRequest struct {
	Content  string `json:"content" binding:"required"`
	Password string `json:"password"`
}

func (s *Server) handleCommentUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	comment, err := s.comments.Update(c.Request.Context(), identity(c), id, req.Password, req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (s *Server) handleCommentDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req secretRequest
	_ = c.ShouldBindJSON(&req)

	if err := s.comments.Delete(c.Request.Context(), identity(c), id, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
