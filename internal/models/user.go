// Package models contains data structures for the application's domain models.
package models

import "time"

// User owns posts and authors comments. Deleting a user removes both.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Age       int       `gorm:"not null" json:"age"`
	Posts     []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments  []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries the fields a partial update may touch. Nil fields are left alone.
type UserPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitnil,notblank,max=255"`
	Email *string `json:"email,omitempty" validate:"omitnil,email,max=254"`
	Age   *int    `json:"age,omitempty" validate:"omitnil,gte=0,lte=150"`
}

// Columns returns the column/value pairs present in the patch.
func (p UserPatch) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Age != nil {
		cols["age"] = *p.Age
	}
	return cols
}
