// internal/services/forum_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

const listContentLimit = 200

type ForumService struct {
	db *gorm.DB
}

type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=255"`
	Content  string   `json:"content" validate:"required,min=10"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Title   string   `json:"title" validate:"omitempty,min=3,max=255"`
	Content string   `json:"content" validate:"omitempty,min=10"`
	Tags    []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
}

type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=5000"`
	ParentCommentID string `json:"parent_comment_id" validate:"omitempty,uuid"`
	IsMentorReply   bool   `json:"is_mentor_reply"`
}

type PostSearchParams struct {
	utils.PaginationParams
	Category string
	Tag      string
}

// PostView is the wire shape for a post; Content is truncated in list
// views and full in detail views.
type PostView struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Content      string                `json:"content"`
	Category     models.PostCategory   `json:"category"`
	Tags         []string              `json:"tags"`
	LikeCount    int                   `json:"like_count"`
	CommentCount int                   `json:"comment_count"`
	IsAnswered   bool                  `json:"is_answered"`
	IsPinned     bool                  `json:"is_pinned"`
	IsFeatured   bool                  `json:"is_featured"`
	Author       *models.PublicProfile `json:"author,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	TimeAgo      string                `json:"time_ago"`
	IsLiked      bool                  `json:"is_liked"`
	IsOwner      bool                  `json:"is_owner"`
}

type CommentView struct {
	ID               string                `json:"id"`
	PostID           string                `json:"post_id"`
	ParentCommentID  string                `json:"parent_comment_id,omitempty"`
	Content          string                `json:"content"`
	LikeCount        int                   `json:"like_count"`
	IsMentorReply    bool                  `json:"is_mentor_reply"`
	IsAcceptedAnswer bool                  `json:"is_accepted_answer"`
	Author           *models.PublicProfile `json:"author,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	TimeAgo          string                `json:"time_ago"`
	IsLiked          bool                  `json:"is_liked"`
	IsOwner          bool                  `json:"is_owner"`
	Replies          []CommentView         `json:"replies,omitempty"`
}

type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func NewForumService(db *gorm.DB) *ForumService {
	return &ForumService{db: db}
}

func (s *ForumService) CreatePost(authorID uuid.UUID, req *CreatePostRequest) (*models.Post, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	category := models.PostCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.NewValidationError("category", "category is not a recognized forum category")
	}

	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		Tags:     models.StringList(req.Tags),
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.db.Preload("Author").First(post, post.ID)
	return post, nil
}

// GetPosts lists non-hidden posts, pinned first, with the author profile
// joined and isLiked/isOwner computed against the current principal.
// currentUserID is nil for anonymous requests.
func (s *ForumService) GetPosts(params PostSearchParams, currentUserID *uuid.UUID) ([]PostView, int64, error) {
	query := s.db.Model(&models.Post{}).Where("is_hidden = ?", false)

	if params.Category != "" && !strings.HasPrefix(params.Category, "All") {
		query = query.Where("category = ?", params.Category)
	}

	if params.Tag != "" {
		query = query.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(params.Tag)+"%")
	}

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query = query.Order("is_pinned DESC")
	allowedSortFields := []string{"created_at", "like_count", "comment_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var posts []models.Post
	if err := query.Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch posts: %w", err)
	}

	likedSet, err := s.likedPostIDs(posts, currentUserID)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, s.postView(&posts[i], currentUserID, likedSet, now, true))
	}

	return views, total, nil
}

func (s *ForumService) GetPost(postID uuid.UUID, currentUserID *uuid.UUID) (*PostView, []CommentView, error) {
	var post models.Post
	if err := s.db.Where("id = ? AND is_hidden = ?", postID, false).
		Preload("Author").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	likedSet, err := s.likedPostIDs([]models.Post{post}, currentUserID)
	if err != nil {
		return nil, nil, err
	}

	view := s.postView(&post, currentUserID, likedSet, time.Now(), false)

	comments, err := s.ThreadedComments(postID, currentUserID)
	if err != nil {
		return nil, nil, err
	}

	return &view, comments, nil
}

func (s *ForumService) UpdatePost(postID, userID uuid.UUID, req *UpdatePostRequest) (*models.Post, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Fetch by id AND owner in one filter so "not found" and "not yours"
	// are indistinguishable.
	var post models.Post
	if err := s.db.Where("id = ? AND author_id = ? AND is_hidden = ?", postID, userID, false).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if req.Tags != nil {
		updates["tags"] = models.StringList(req.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
	}

	s.db.Preload("Author").First(&post, post.ID)
	return &post, nil
}

// DeletePost soft-hides the post. The stored row is retained.
func (s *ForumService) DeletePost(postID, userID uuid.UUID) error {
	result := s.db.Model(&models.Post{}).
		Where("id = ? AND author_id = ? AND is_hidden = ?", postID, userID, false).
		Update("is_hidden", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TogglePostLike flips the caller's membership in the post's liked set and
// adjusts the counter by exactly one, inside a transaction. Returns the
// new like state.
func (s *ForumService) TogglePostLike(postID, userID uuid.UUID) (*LikeResult, error) {
	var result LikeResult

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND is_hidden = ?", postID, false).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var like models.PostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			if err := bumpPostLikeCount(tx, postID, -1); err != nil {
				return err
			}
			result.Liked = false
			result.LikeCount = post.LikeCount - 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.PostLike{PostID: postID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			if err := bumpPostLikeCount(tx, postID, 1); err != nil {
				return err
			}
			result.Liked = true
			result.LikeCount = post.LikeCount + 1
		default:
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *ForumService) CreateComment(postID, authorID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != "" {
		id, err := uuid.Parse(req.ParentCommentID)
		if err != nil {
			return nil, apperrors.NewValidationError("parent_comment_id", "parent_comment_id must be a valid id")
		}
		parentID = &id
	}

	comment := &models.Comment{
		PostID:          postID,
		AuthorID:        authorID,
		ParentCommentID: parentID,
		Content:         req.Content,
		IsMentorReply:   req.IsMentorReply,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND is_hidden = ?", postID, false).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if parentID != nil {
			var parent models.Comment
			if err := tx.Where("id = ? AND post_id = ? AND is_hidden = ?", *parentID, postID, false).
				First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewValidationError("parent_comment_id", "parent comment does not exist on this post")
				}
				return fmt.Errorf("database error: %w", err)
			}
			// Threading is one level deep: replies to replies are rejected.
			if parent.ParentCommentID != nil {
				return apperrors.NewValidationError("parent_comment_id", "replies to replies are not supported")
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		return bumpPostCommentCount(tx, postID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Author").First(comment, comment.ID)
	return comment, nil
}

// DeleteComment soft-hides the caller's comment and decrements the post
// counter, keeping CommentCount equal to the number of non-hidden
// comments.
func (s *ForumService) DeleteComment(commentID, userID uuid.UUID) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Where("id = ? AND author_id = ? AND is_hidden = ?", commentID, userID, false).
			First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&comment).Update("is_hidden", true).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		return bumpPostCommentCount(tx, comment.PostID, -1)
	})
}

func (s *ForumService) ToggleCommentLike(commentID, userID uuid.UUID) (*LikeResult, error) {
	var result LikeResult

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Where("id = ? AND is_hidden = ?", commentID, false).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var like models.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			if err := bumpCommentLikeCount(tx, commentID, -1); err != nil {
				return err
			}
			result.Liked = false
			result.LikeCount = comment.LikeCount - 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.CommentLike{CommentID: commentID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			if err := bumpCommentLikeCount(tx, commentID, 1); err != nil {
				return err
			}
			result.Liked = true
			result.LikeCount = comment.LikeCount + 1
		default:
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AcceptAnswer marks one comment as the accepted answer for its post.
// Only the post's owner may do this. Exclusivity is enforced by clearing
// every sibling before setting the target, then the post is marked
// answered, all in one transaction.
func (s *ForumService) AcceptAnswer(postID, commentID, userID uuid.UUID) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND author_id = ? AND is_hidden = ?", postID, userID, false).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var comment models.Comment
		if err := tx.Where("id = ? AND post_id = ? AND is_hidden = ?", commentID, postID, false).
			First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", postID).
			Update("is_accepted_answer", false).Error; err != nil {
			return fmt.Errorf("failed to clear accepted answers: %w", err)
		}

		if err := tx.Model(&comment).Update("is_accepted_answer", true).Error; err != nil {
			return fmt.Errorf("failed to set accepted answer: %w", err)
		}

		if err := tx.Model(&post).Update("is_answered", true).Error; err != nil {
			return fmt.Errorf("failed to mark post answered: %w", err)
		}

		return nil
	})
}

// ThreadedComments assembles top-level comments with their direct replies,
// replies sorted by creation time ascending. One level only: a reply's own
// replies are never attached.
func (s *ForumService) ThreadedComments(postID uuid.UUID, currentUserID *uuid.UUID) ([]CommentView, error) {
	var comments []models.Comment
	if err := s.db.Where("post_id = ? AND is_hidden = ?", postID, false).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	likedSet, err := s.likedCommentIDs(comments, currentUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]CommentView, 0)
	replies := make(map[uuid.UUID][]CommentView)

	for i := range comments {
		c := &comments[i]
		if c.ParentCommentID != nil {
			replies[*c.ParentCommentID] = append(replies[*c.ParentCommentID], s.commentView(c, currentUserID, likedSet, now))
		}
	}

	for i := range comments {
		c := &comments[i]
		if c.ParentCommentID != nil {
			continue
		}
		view := s.commentView(c, currentUserID, likedSet, now)
		view.Replies = replies[c.ID]
		views = append(views, view)
	}

	return views, nil
}

// Counter mutations are centralized: one function per counter.

func bumpPostLikeCount(tx *gorm.DB, postID uuid.UUID, delta int) error {
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update like count: %w", err)
	}
	return nil
}

func bumpPostCommentCount(tx *gorm.DB, postID uuid.UUID, delta int) error {
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}
	return nil
}

func bumpCommentLikeCount(tx *gorm.DB, commentID uuid.UUID, delta int) error {
	if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update comment like count: %w", err)
	}
	return nil
}

func (s *ForumService) postView(post *models.Post, currentUserID *uuid.UUID, likedSet map[uuid.UUID]bool, now time.Time, truncate bool) PostView {
	content := post.Content
	if truncate {
		content = utils.TruncateContent(content, listContentLimit)
	}

	view := PostView{
		ID:           post.ID.String(),
		Title:        post.Title,
		Content:      content,
		Category:     post.Category,
		Tags:         post.Tags,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		IsAnswered:   post.IsAnswered,
		IsPinned:     post.IsPinned,
		IsFeatured:   post.IsFeatured,
		CreatedAt:    post.CreatedAt,
		TimeAgo:      utils.TimeAgo(post.CreatedAt, now),
		IsLiked:      likedSet[post.ID],
	}

	if post.Author != nil {
		profile := post.Author.Public()
		view.Author = &profile
	}
	if currentUserID != nil {
		view.IsOwner = post.AuthorID == *currentUserID
	}

	return view
}

func (s *ForumService) commentView(comment *models.Comment, currentUserID *uuid.UUID, likedSet map[uuid.UUID]bool, now time.Time) CommentView {
	view := CommentView{
		ID:               comment.ID.String(),
		PostID:           comment.PostID.String(),
		Content:          comment.Content,
		LikeCount:        comment.LikeCount,
		IsMentorReply:    comment.IsMentorReply,
		IsAcceptedAnswer: comment.IsAcceptedAnswer,
		CreatedAt:        comment.CreatedAt,
		TimeAgo:          utils.TimeAgo(comment.CreatedAt, now),
		IsLiked:          likedSet[comment.ID],
	}

	if comment.ParentCommentID != nil {
		view.ParentCommentID = comment.ParentCommentID.String()
	}
	if comment.Author != nil {
		profile := comment.Author.Public()
		view.Author = &profile
	}
	if currentUserID != nil {
		view.IsOwner = comment.AuthorID == *currentUserID
	}

	return view
}

func (s *ForumService) likedPostIDs(posts []models.Post, currentUserID *uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if currentUserID == nil || len(posts) == 0 {
		return liked, nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
	}

	var likes []models.PostLike
	if err := s.db.Where("user_id = ? AND post_id IN ?", *currentUserID, ids).
		Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}

	for _, like := range likes {
		liked[like.PostID] = true
	}
	return liked, nil
}

func (s *ForumService) likedCommentIDs(comments []models.Comment, currentUserID *uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if currentUserID == nil || len(comments) == 0 {
		return liked, nil
	}

	ids := make([]uuid.UUID, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].ID)
	}

	var likes []models.CommentLike
	if err := s.db.Where("user_id = ? AND comment_id IN ?", *currentUserID, ids).
		Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}

	for _, like := range likes {
		liked[like.CommentID] = true
	}
	return liked, nil
}
