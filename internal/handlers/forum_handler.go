// internal/handlers/forum_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ForumHandler struct {
	forumService *services.ForumService
}

func NewForumHandler(forumService *services.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// optionalUserID returns the principal when one was attached, nil for
// anonymous reads.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.NotFoundResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/v1/forum/posts
func (h *ForumHandler) GetPosts(c *gin.Context) {
	params := services.PostSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Category:         c.Query("category"),
		Tag:              c.Query("tag"),
	}

	posts, total, err := h.forumService.GetPosts(params, optionalUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, posts, utils.NewPagination(total, params.PaginationParams))
}

// GET /api/v1/forum/posts/:id
func (h *ForumHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, comments, err := h.forumService.GetPost(postID, optionalUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"post": post, "comments": comments})
}

// POST /api/v1/forum/posts
func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	post, err := h.forumService.CreatePost(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, post)
}

// PUT /api/v1/forum/posts/:id
func (h *ForumHandler) UpdatePost(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	post, err := h.forumService.UpdatePost(postID, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, post)
}

// DELETE /api/v1/forum/posts/:id
func (h *ForumHandler) DeletePost(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.forumService.DeletePost(postID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, nil, "post deleted")
}

// POST /api/v1/forum/posts/:id/like
func (h *ForumHandler) TogglePostLike(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.forumService.TogglePostLike(postID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /api/v1/forum/posts/:id/comments
func (h *ForumHandler) CreateComment(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	comment, err := h.forumService.CreateComment(postID, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, comment)
}

// DELETE /api/v1/forum/comments/:id
func (h *ForumHandler) DeleteComment(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.forumService.DeleteComment(commentID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, nil, "comment deleted")
}

// POST /api/v1/forum/comments/:id/like
func (h *ForumHandler) ToggleCommentLike(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.forumService.ToggleCommentLike(commentID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /api/v1/forum/posts/:id/accept/:commentId
func (h *ForumHandler) AcceptAnswer(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.forumService.AcceptAnswer(postID, commentID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, nil, "answer accepted")
}
