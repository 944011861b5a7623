package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	Users    int
	Posts    int
	Comments int
	// Clean removes existing rows first.
	Clean   bool
	Factory FactoryOptions
}

// Summary counts what Seed created.
type Summary struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// Seed populates the database with fake data. Posts are spread across the
// seeded users; comments pick a random author and a random post.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Summary, error) {
	var sum Summary
	if opts.Users < 0 || opts.Posts < 0 || opts.Comments < 0 {
		return sum, errors.New("seed counts must not be negative")
	}
	if opts.Users == 0 && (opts.Posts > 0 || opts.Comments > 0) {
		return sum, errors.New("posts and comments need at least one user")
	}
	if opts.Posts == 0 && opts.Comments > 0 {
		return sum, errors.New("comments need at least one post")
	}

	log.Printf("Seeding %d users, %d posts, %d comments", opts.Users, opts.Posts, opts.Comments)

	if opts.Clean && !opts.Factory.DryRun {
		if err := Clean(ctx, db); err != nil {
			return sum, fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db, opts.Factory)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return sum, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		p, err := f.CreatePost(ctx, users[i%len(users)])
		if err != nil {
			return sum, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, p)
	}
	sum.Posts = len(posts)

	for i := 0; i < opts.Comments; i++ {
		author := users[f.faker.Number(0, len(users)-1)]
		post := posts[f.faker.Number(0, len(posts)-1)]
		if _, err := f.CreateComment(ctx, author, post); err != nil {
			return sum, fmt.Errorf("failed to create comment: %w", err)
		}
		sum.Comments++
	}

	log.Printf("Seeding complete: %+v", sum)
	return sum, nil
}

// Clean deletes every comment, post and user, children first.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
