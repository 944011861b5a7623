// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"log"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// FactoryOptions tune how a Factory builds rows.
type FactoryOptions struct {
	// DryRun builds entities and assigns synthetic IDs without writing.
	DryRun bool
	// MaxDays spreads CreatedAt over the last MaxDays days. Zero means now.
	MaxDays int
	// RandSeed makes generated content reproducible. Zero picks a time-based seed.
	RandSeed int64
}

// Factory builds domain entities and persists them through the repositories.
// It is a thin helper used by Seed and tests.
type Factory struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	faker    *gofakeit.Faker
	opts     FactoryOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB. db may be
// nil in DryRun mode.
func NewFactory(db *gorm.DB, opts FactoryOptions) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Factory{
		faker:  gofakeit.New(seed),
		opts:   opts,
		nextID: 1000,
	}
	if db != nil {
		f.users = repository.NewUserRepository(db)
		f.posts = repository.NewPostRepository(db)
		f.comments = repository.NewCommentRepository(db)
	}
	return f
}

func (f *Factory) createdAt() time.Time {
	if f.opts.MaxDays <= 0 {
		return time.Now()
	}
	return f.faker.DateRange(time.Now().AddDate(0, 0, -f.opts.MaxDays), time.Now())
}

func (f *Factory) syntheticID() uint {
	f.nextID++
	return f.nextID
}

// BuildUser returns an unsaved user with fake data.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		Name:      f.faker.Name(),
		Email:     f.faker.Email(),
		Age:       f.faker.Number(18, 90),
		CreatedAt: f.createdAt(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if f.opts.DryRun {
		user.ID = f.syntheticID()
		log.Printf("[dry-run] CreateUser: id=%d name=%q", user.ID, user.Name)
		return user, nil
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post authored by author.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:     f.faker.Sentence(5),
		Content:   f.faker.Paragraph(1, 3, 12, "\n"),
		Published: f.faker.Bool(),
		AuthorID:  author.ID,
		CreatedAt: f.createdAt(),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if f.opts.DryRun {
		post.ID = f.syntheticID()
		log.Printf("[dry-run] CreatePost: id=%d author=%d title=%q", post.ID, post.AuthorID, post.Title)
		return post, nil
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// BuildComment returns an unsaved comment by author on post.
func (f *Factory) BuildComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) *models.Comment {
	comment := &models.Comment{
		Content:   f.faker.Sentence(8),
		AuthorID:  author.ID,
		PostID:    post.ID,
		CreatedAt: f.createdAt(),
	}
	for _, override := range overrides {
		override(comment)
	}
	return comment
}

// CreateComment constructs and persists a sample comment on the provided
// post authored by the provided user.
func (f *Factory) CreateComment(ctx context.Context, author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := f.BuildComment(author, post, overrides...)
	if f.opts.DryRun {
		comment.ID = f.syntheticID()
		log.Printf("[dry-run] CreateComment: id=%d post=%d author=%d", comment.ID, comment.PostID, comment.AuthorID)
		return comment, nil
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
