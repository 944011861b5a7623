package models

import "time"

// Post is owned by exactly one user. AuthorID never changes after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Published bool      `gorm:"not null;default:false" json:"published"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch carries the mutable post fields. The author is deliberately absent.
type PostPatch struct {
	Title     *string `json:"title,omitempty" validate:"omitnil,notblank,max=255"`
	Content   *string `json:"content,omitempty" validate:"omitnil,notblank"`
	Published *bool   `json:"published,omitempty"`
}

// Columns returns the column/value pairs present in the patch.
func (p PostPatch) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols
}
