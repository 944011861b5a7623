package models

import "time"

// Comment hangs off a post and is authored by a user. Either parent's
// deletion removes it.
type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentPatch carries the mutable comment fields.
type CommentPatch struct {
	Content *string `json:"content,omitempty" validate:"omitnil,notblank,max=10000"`
}

// Columns returns the column/value pairs present in the patch.
func (p CommentPatch) Columns() map[string]any {
	cols := make(map[string]any, 1)
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	return cols
}
