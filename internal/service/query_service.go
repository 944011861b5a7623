package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// QueryService serves reads. Single-entity reads come back hydrated with
// their relations; lists are flat. Every call goes to the store.
type QueryService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewQueryService returns a QueryService over the three repositories.
func NewQueryService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *QueryService {
	return &QueryService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// GetUser returns the user with its posts and comments.
func (s *QueryService) GetUser(ctx context.Context, id uint) (*models.UserDetail, error) {
	user, err := s.userRepo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewUserDetail(user), nil
}

// GetPost returns the post with its author and its comments, each with an author.
func (s *QueryService) GetPost(ctx context.Context, id uint) (*models.PostDetail, error) {
	post, err := s.postRepo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewPostDetail(post), nil
}

// GetComment returns the comment with its author and post.
func (s *QueryService) GetComment(ctx context.Context, id uint) (*models.CommentDetail, error) {
	comment, err := s.commentRepo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewCommentDetail(comment), nil
}

// ListUsers returns every user ordered by id.
func (s *QueryService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ListPosts returns posts, restricted to one author when authorID is set.
func (s *QueryService) ListPosts(ctx context.Context, authorID *uint) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, models.ListFilter{AuthorID: authorID})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// ListComments filters by post when postID is set, otherwise by author when
// authorID is set. Both set means post wins.
func (s *QueryService) ListComments(ctx context.Context, postID, authorID *uint) ([]models.Comment, error) {
	filter := models.ListFilter{PostID: postID}
	if postID == nil {
		filter.AuthorID = authorID
	}
	comments, err := s.commentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Counts reports the number of rows per table.
func (s *QueryService) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for name, count := range map[string]func(context.Context) (int64, error){
		"users":    s.userRepo.Count,
		"posts":    s.postRepo.Count,
		"comments": s.commentRepo.Count,
	} {
		n, err := count(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}
