package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CommentService validates and writes comments, checking author and post exist.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	publisher   notifications.Publisher
}

// CreateCommentInput is the body of a comment create.
type CreateCommentInput struct {
	Content  string `json:"content" validate:"notblank,max=10000"`
	AuthorID uint   `json:"authorId" validate:"gt=0"`
	PostID   uint   `json:"postId" validate:"gt=0"`
}

// NewCommentService returns a CommentService. publisher may be nil.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	publisher notifications.Publisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// resolveRefs checks the author first, then the post.
func (s *CommentService) resolveRefs(ctx context.Context, authorID, postID uint) error {
	if err := resolve(ctx, "comment", "User", authorID, func(ctx context.Context, id uint) error {
		_, err := s.userRepo.GetByID(ctx, id)
		return err
	}); err != nil {
		return err
	}
	return resolve(ctx, "comment", "Post", postID, func(ctx context.Context, id uint) error {
		_, err := s.postRepo.GetByID(ctx, id)
		return err
	})
}

// CreateComment validates in, resolves its references and stores the comment.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, rejectValidation("comment", err)
	}
	if err := s.resolveRefs(ctx, in.AuthorID, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, remapConstraint(ctx, "comment", err, func(ctx context.Context) error {
			return s.resolveRefs(ctx, in.AuthorID, in.PostID)
		})
	}

	publish(ctx, s.publisher, notifications.NewEvent(notifications.CommentCreated, "comment", comment.ID))
	return comment, nil
}

// UpdateComment applies the non-nil fields of patch to comment id.
func (s *CommentService) UpdateComment(ctx context.Context, id uint, patch models.CommentPatch) (*models.Comment, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, rejectValidation("comment", err)
	}

	comment, err := s.commentRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if len(patch.Columns()) > 0 {
		publish(ctx, s.publisher, notifications.NewEvent(notifications.CommentUpdated, "comment", id))
	}
	return comment, nil
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (models.DeleteResult, error) {
	res, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if res.Affected == 0 {
		return res, models.NewNotFoundError("Comment", id)
	}

	observability.RecordCascade("comments", res.Affected, 0, 0)
	publish(ctx, s.publisher, notifications.NewEvent(notifications.CommentDeleted, "comment", id))
	return res, nil
}
