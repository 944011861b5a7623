package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService validates and writes posts, checking the author exists.
type PostService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	publisher notifications.Publisher
}

// CreatePostInput is the body of a post create. Published defaults to false.
type CreatePostInput struct {
	Title     string `json:"title" validate:"notblank,max=255"`
	Content   string `json:"content" validate:"notblank"`
	Published *bool  `json:"published"`
	AuthorID  uint   `json:"authorId" validate:"gt=0"`
}

// NewPostService returns a PostService. publisher may be nil.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	publisher notifications.Publisher,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *PostService) resolveAuthor(ctx context.Context, authorID uint) error {
	return resolve(ctx, "post", "User", authorID, func(ctx context.Context, id uint) error {
		_, err := s.userRepo.GetByID(ctx, id)
		return err
	})
}

// CreatePost validates in, resolves the author and stores the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.Struct(in); err != nil {
		return nil, rejectValidation("post", err)
	}
	if err := s.resolveAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, remapConstraint(ctx, "post", err, func(ctx context.Context) error {
			return s.resolveAuthor(ctx, in.AuthorID)
		})
	}

	publish(ctx, s.publisher, notifications.NewEvent(notifications.PostCreated, "post", post.ID))
	return post, nil
}

// UpdatePost applies the non-nil fields of patch to post id.
func (s *PostService) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, rejectValidation("post", err)
	}

	post, err := s.postRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if len(patch.Columns()) > 0 {
		publish(ctx, s.publisher, notifications.NewEvent(notifications.PostUpdated, "post", id))
	}
	return post, nil
}

// DeletePost removes the post and every comment on it, whoever wrote them.
func (s *PostService) DeletePost(ctx context.Context, id uint) (models.DeleteResult, error) {
	res, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if res.Affected == 0 {
		return res, models.NewNotFoundError("Post", id)
	}

	observability.RecordCascade("posts", res.Affected, 0, len(res.Comments))
	publish(ctx, s.publisher, deletedEvent(notifications.PostDeleted, "post", id, res))
	return res, nil
}
