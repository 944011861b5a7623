package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getWithRelationsFn func(context.Context, uint) (*models.User, error)
	updateFn           func(context.Context, uint, models.UserPatch) (*models.User, error)
	deleteFn           func(context.Context, uint) (models.DeleteResult, error)
	listFn             func(context.Context) ([]models.User, error)
	countFn            func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetWithRelations(ctx context.Context, id uint) (*models.User, error) {
	return s.getWithRelationsFn(ctx, id)
}
func (s *userRepoStub) Update(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	return s.updateFn(ctx, id, patch)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) (models.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:           func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getWithRelationsFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		updateFn: func(_ context.Context, id uint, _ models.UserPatch) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ uint) (models.DeleteResult, error) { return models.DeleteResult{Affected: 1}, nil },
		listFn:   func(_ context.Context) ([]models.User, error) { return nil, nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn           func(context.Context, *models.Post) error
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	getWithRelationsFn func(context.Context, uint) (*models.Post, error)
	updateFn           func(context.Context, uint, models.PostPatch) (*models.Post, error)
	deleteFn           func(context.Context, uint) (models.DeleteResult, error)
	listFn             func(context.Context, models.ListFilter) ([]models.Post, error)
	countFn            func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetWithRelations(ctx context.Context, id uint) (*models.Post, error) {
	return s.getWithRelationsFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	return s.updateFn(ctx, id, patch)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (models.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter models.ListFilter) ([]models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:           func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getWithRelationsFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn: func(_ context.Context, id uint, _ models.PostPatch) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ uint) (models.DeleteResult, error) { return models.DeleteResult{Affected: 1}, nil },
		listFn:   func(_ context.Context, _ models.ListFilter) ([]models.Post, error) { return nil, nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	getWithRelationsFn func(context.Context, uint) (*models.Comment, error)
	updateFn           func(context.Context, uint, models.CommentPatch) (*models.Comment, error)
	deleteFn           func(context.Context, uint) (models.DeleteResult, error)
	listFn             func(context.Context, models.ListFilter) ([]models.Comment, error)
	countFn            func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetWithRelations(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getWithRelationsFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, id uint, patch models.CommentPatch) (*models.Comment, error) {
	return s.updateFn(ctx, id, patch)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) (models.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context, filter models.ListFilter) ([]models.Comment, error) {
	return s.listFn(ctx, filter)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getWithRelationsFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		updateFn: func(_ context.Context, id uint, _ models.CommentPatch) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ uint) (models.DeleteResult, error) { return models.DeleteResult{Affected: 1}, nil },
		listFn:   func(_ context.Context, _ models.ListFilter) ([]models.Comment, error) { return nil, nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []notifications.Event
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, ev notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func notFound(resource string) func(context.Context, uint) error {
	return func(_ context.Context, id uint) error { return models.NewNotFoundError(resource, id) }
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func assertInvalidReference(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeInvalidReference)
}

func ptr[T any](v T) *T { return &v }
