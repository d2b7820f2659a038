package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type communityRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

func (s *Server) handleCommunityCreate(c *gin.Context) {
	var req communityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	community, err := s.comms.Create(c.Request.Context(), identity(c), req.Title, req.Description, req.Thumbnail)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommunityResponse(community))
}

func (s *Server) handleCommunityList(c *gin.Context) {
	page := queryPage(c)
	list, total, err := s.comms.List(c.Request.Context(), page)
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]communityResponse, 0, len(list))
	for i := range list {
		items = append(items, toCommunityResponse(&list[i]))
	}
	c.JSON(http.StatusOK, pagedResponse[communityResponse]{Items: items, Total: total, Page: page})
}

func (s *Server) handleCommunityGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	community, err := s.comms.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommunityResponse(community))
}

func (s *Server) handleCommunityUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	var req communityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.comms.Update(c.Request.Context(), identity(c), id, req.Title, req.Description, req.Thumbnail); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCommunityDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.comms.Delete(c.Request.Context(), identity(c), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handlePostList serves a community's post feed under /community/:id/post.
func (s *Server) handlePostList(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	page := queryPage(c)
	list, total, err := s.posts.ListByCommunity(c.Request.Context(), id, page)
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]postResponse, 0, len(list))
	for i := range list {
		items = append(items, toPostResponse(&list[i]))
	}
	c.JSON(http.StatusOK, pagedResponse[postResponse]{Items: items, Total: total, Page: page})
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// queryPage parses the optional ?page= parameter, defaulting to the first
// page.
func queryPage(c *gin.Context) int64 {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
