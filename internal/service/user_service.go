package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// UserService validates and writes users.
type UserService struct {
	userRepo  repository.UserRepository
	publisher notifications.Publisher
}

// CreateUserInput is the body of a user create.
type CreateUserInput struct {
	Name  string `json:"name" validate:"notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=254"`
	Age   int    `json:"age" validate:"gte=0,lte=150"`
}

// NewUserService returns a UserService. publisher may be nil.
func NewUserService(userRepo repository.UserRepository, publisher notifications.Publisher) *UserService {
	return &UserService{userRepo: userRepo, publisher: publisher}
}

// CreateUser validates in and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, rejectValidation("user", err)
	}

	user := &models.User{Name: in.Name, Email: in.Email, Age: in.Age}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, notifications.NewEvent(notifications.UserCreated, "user", user.ID))
	return user, nil
}

// UpdateUser applies the non-nil fields of patch to user id.
func (s *UserService) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, rejectValidation("user", err)
	}

	user, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if len(patch.Columns()) > 0 {
		publish(ctx, s.publisher, notifications.NewEvent(notifications.UserUpdated, "user", id))
	}
	return user, nil
}

// DeleteUser removes the user together with its posts, the comments on those
// posts, and every comment it wrote.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (models.DeleteResult, error) {
	res, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if res.Affected == 0 {
		return res, models.NewNotFoundError("User", id)
	}

	observability.RecordCascade("users", res.Affected, len(res.Posts), len(res.Comments))
	publish(ctx, s.publisher, deletedEvent(notifications.UserDeleted, "user", id, res))
	return res, nil
}
