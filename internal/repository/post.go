package repository

import (
	"context"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetWithRelations(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id uint) (models.DeleteResult, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger(tablePosts)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, end := startOp(ctx, r.db, "Create", tablePosts)
	defer end(&err)

	if err = r.db.WithContext(ctx).Create(post).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (_ *models.Post, err error) {
	ctx, end := startOp(ctx, r.db, "GetByID", tablePosts)
	defer end(&err)

	var post models.Post
	if err = r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

// GetWithRelations loads the post with its author and its comments, each with
// its author, from one snapshot.
func (r *postRepository) GetWithRelations(ctx context.Context, id uint) (_ *models.Post, err error) {
	ctx, end := startOp(ctx, r.db, "GetWithRelations", tablePosts)
	defer end(&err)

	var post models.Post
	err = database.ReadSnapshot(ctx, r.db, func(tx *gorm.DB) error {
		return tx.
			Preload("Author").
			Preload("Comments", orderByID).
			Preload("Comments.Author").
			First(&post, id).Error
	})
	if err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, id uint, patch models.PostPatch) (_ *models.Post, err error) {
	ctx, end := startOp(ctx, r.db, "Update", tablePosts)
	defer end(&err)

	var post models.Post
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyPatch(tx, &post, id, patch.Columns())
	})
	if err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

// Delete removes the post and all of its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) (res models.DeleteResult, err error) {
	ctx, end := startOp(ctx, r.db, "Delete", tablePosts)
	defer end(&err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = models.DeleteResult{}
		found, err := lockRow(tx, &models.Post{}, id)
		if err != nil || !found {
			return err
		}

		var commentIDs []uint
		if err := forUpdate(tx.Model(&models.Comment{})).
			Where("post_id = ?", id).
			Order("id ASC").
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		del := tx.Delete(&models.Post{}, id)
		if del.Error != nil {
			return del.Error
		}
		res = models.DeleteResult{Affected: del.RowsAffected, Comments: commentIDs}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.DeleteResult{}, storeError(err)
	}
	if res.Affected > 0 {
		r.log.LogDelete(ctx, id, 0, len(res.Comments))
	}
	return res, nil
}

// List returns posts in id order, optionally restricted to one author.
func (r *postRepository) List(ctx context.Context, filter models.ListFilter) (_ []models.Post, err error) {
	ctx, end := startOp(ctx, r.db, "List", tablePosts)
	defer end(&err)

	q := r.db.WithContext(ctx).Order("id ASC")
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	posts := []models.Post{}
	if err = q.Find(&posts).Error; err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, end := startOp(ctx, r.db, "Count", tablePosts)
	defer end(&err)

	if err = r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, storeError(err)
	}
	return n, nil
}
