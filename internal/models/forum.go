// internal/models/forum.go
package models

import (
	"github.com/google/uuid"
)

type Post struct {
	BaseModel
	AuthorID     uuid.UUID    `json:"author_id" gorm:"type:uuid;not null;index"`
	Title        string       `json:"title" gorm:"size:255;not null"`
	Content      string       `json:"content" gorm:"type:text;not null"`
	Category     PostCategory `json:"category" gorm:"type:varchar(50);not null;index"`
	Tags         StringList   `json:"tags" gorm:"type:text"`
	LikeCount    int          `json:"like_count" gorm:"default:0"`
	CommentCount int          `json:"comment_count" gorm:"default:0"`
	IsAnswered   bool         `json:"is_answered" gorm:"default:false"`
	IsPinned     bool         `json:"is_pinned" gorm:"default:false"`
	IsFeatured   bool         `json:"is_featured" gorm:"default:false"`
	IsHidden     bool         `json:"-" gorm:"default:false;index"`

	// Relationships
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// PostLike records set-membership for the like toggle. The unique pair
// index is what guarantees at-most-one-increment-per-toggle.
type PostLike struct {
	BaseModel
	PostID uuid.UUID `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_pair"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_pair"`
}

type Comment struct {
	BaseModel
	PostID           uuid.UUID  `json:"post_id" gorm:"type:uuid;not null;index"`
	AuthorID         uuid.UUID  `json:"author_id" gorm:"type:uuid;not null;index"`
	ParentCommentID  *uuid.UUID `json:"parent_comment_id" gorm:"type:uuid;index"`
	Content          string     `json:"content" gorm:"type:text;not null"`
	LikeCount        int        `json:"like_count" gorm:"default:0"`
	IsMentorReply    bool       `json:"is_mentor_reply" gorm:"default:false"`
	IsAcceptedAnswer bool       `json:"is_accepted_answer" gorm:"default:false"`
	IsHidden         bool       `json:"-" gorm:"default:false;index"`

	// Relationships
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

type CommentLike struct {
	BaseModel
	CommentID uuid.UUID `json:"comment_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_pair"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_pair"`
}
