// internal/services/forum_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func TestCreateAndGetPostRoundTrip(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	user := createTestUser(t, db, "author@example.com")

	created, err := svc.CreatePost(user.ID, &CreatePostRequest{
		Title:    "Freight rates to Rotterdam",
		Content:  "Has anyone locked in reefer container rates for Q3 shipments?",
		Category: "Logistics",
		Tags:     []string{"freight", "eu"},
	})
	require.NoError(t, err)

	view, _, err := svc.GetPost(created.ID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Freight rates to Rotterdam", view.Title)
	assert.Equal(t, models.PostCategoryLogistics, view.Category)
	assert.Equal(t, []string{"freight", "eu"}, view.Tags)
	assert.True(t, view.IsOwner)
}

func TestCreatePostRejectsUnknownCategory(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	user := createTestUser(t, db, "author@example.com")

	_, err := svc.CreatePost(user.ID, &CreatePostRequest{
		Title:    "A valid title",
		Content:  "Long enough content for the validator.",
		Category: "Gossip",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSoftDeletedPostHiddenButRetained(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID)

	require.NoError(t, svc.DeletePost(post.ID, user.ID))

	_, _, err := svc.GetPost(post.ID, &user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	views, total, err := svc.GetPosts(PostSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, SortBy: "created_at", Order: "desc"},
	}, &user.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, views)

	// The row still exists, only hidden.
	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.True(t, stored.IsHidden)
}

func TestCrossUserDeleteReturnsNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	post := createTestPost(t, db, owner.ID)

	err := svc.DeletePost(post.ID, intruder.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.False(t, stored.IsHidden)
}

func TestTogglePostLikeIdempotentPair(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	author := createTestUser(t, db, "author@example.com")
	liker := createTestUser(t, db, "liker@example.com")
	post := createTestPost(t, db, author.ID)

	first, err := svc.TogglePostLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikeCount)

	second, err := svc.TogglePostLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikeCount)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 0, stored.LikeCount)

	var likeRows int64
	db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&likeRows)
	assert.Zero(t, likeRows)
}

func TestCommentLifecycleMaintainsCounter(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	author := createTestUser(t, db, "author@example.com")
	replier := createTestUser(t, db, "replier@example.com")
	post := createTestPost(t, db, author.ID)

	comment, err := svc.CreateComment(post.ID, replier.ID, &CreateCommentRequest{
		Content: "You need the EU TRACES pre-notification first.",
	})
	require.NoError(t, err)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.CommentCount)

	require.NoError(t, svc.DeleteComment(comment.ID, replier.ID))

	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 0, stored.CommentCount)
}

func TestRepliesAreOneLevelDeep(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	author := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, author.ID)

	top, err := svc.CreateComment(post.ID, author.ID, &CreateCommentRequest{Content: "Top-level comment."})
	require.NoError(t, err)

	reply, err := svc.CreateComment(post.ID, author.ID, &CreateCommentRequest{
		Content:         "Direct reply.",
		ParentCommentID: top.ID.String(),
	})
	require.NoError(t, err)

	_, err = svc.CreateComment(post.ID, author.ID, &CreateCommentRequest{
		Content:         "Reply to a reply.",
		ParentCommentID: reply.ID.String(),
	})
	assert.True(t, apperrors.IsValidation(err))

	threads, err := svc.ThreadedComments(post.ID, &author.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "Direct reply.", threads[0].Replies[0].Content)
}

func TestAcceptAnswerExclusivity(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	owner := createTestUser(t, db, "owner@example.com")
	helper := createTestUser(t, db, "helper@example.com")
	post := createTestPost(t, db, owner.ID)

	first, err := svc.CreateComment(post.ID, helper.ID, &CreateCommentRequest{Content: "First suggestion."})
	require.NoError(t, err)
	second, err := svc.CreateComment(post.ID, helper.ID, &CreateCommentRequest{Content: "Second suggestion."})
	require.NoError(t, err)

	require.NoError(t, svc.AcceptAnswer(post.ID, first.ID, owner.ID))
	require.NoError(t, svc.AcceptAnswer(post.ID, second.ID, owner.ID))

	var accepted int64
	db.Model(&models.Comment{}).
		Where("post_id = ? AND is_accepted_answer = ?", post.ID, true).
		Count(&accepted)
	assert.Equal(t, int64(1), accepted)

	var current models.Comment
	require.NoError(t, db.First(&current, second.ID).Error)
	assert.True(t, current.IsAcceptedAnswer)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.True(t, stored.IsAnswered)

	// Only the post owner may accept.
	err = svc.AcceptAnswer(post.ID, first.ID, helper.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostPaginationLaw(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	user := createTestUser(t, db, "author@example.com")

	for i := 0; i < 5; i++ {
		createTestPost(t, db, user.ID)
	}

	params := func(page, limit int) PostSearchParams {
		return PostSearchParams{
			PaginationParams: utils.PaginationParams{Page: page, Limit: limit, SortBy: "created_at", Order: "desc"},
		}
	}

	views, total, err := svc.GetPosts(params(1, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, views, 2)

	views, _, err = svc.GetPosts(params(3, 2), nil)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// Beyond the last page: empty, not an error.
	views, _, err = svc.GetPosts(params(4, 2), nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetPostsTruncatesListContent(t *testing.T) {
	db := testDB(t)
	svc := NewForumService(db)
	user := createTestUser(t, db, "author@example.com")

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.CreatePost(user.ID, &CreatePostRequest{
		Title:    "A very long post",
		Content:  string(long),
		Category: "General",
	})
	require.NoError(t, err)

	views, _, err := svc.GetPosts(PostSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, SortBy: "created_at", Order: "desc"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.LessOrEqual(t, len(views[0].Content), listContentLimit+3)
	assert.Contains(t, views[0].Content, "...")
}
