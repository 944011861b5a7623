package repository

import (
	"context"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetWithRelations(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, id uint, patch models.CommentPatch) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (models.DeleteResult, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Comment, error)
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, end := startOp(ctx, r.db, "Create", tableComments)
	defer end(&err)

	if err = r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (_ *models.Comment, err error) {
	ctx, end := startOp(ctx, r.db, "GetByID", tableComments)
	defer end(&err)

	var comment models.Comment
	if err = r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, lookupError(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) GetWithRelations(ctx context.Context, id uint) (_ *models.Comment, err error) {
	ctx, end := startOp(ctx, r.db, "GetWithRelations", tableComments)
	defer end(&err)

	var comment models.Comment
	err = database.ReadSnapshot(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Preload("Author").Preload("Post").First(&comment, id).Error
	})
	if err != nil {
		return nil, lookupError(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, id uint, patch models.CommentPatch) (_ *models.Comment, err error) {
	ctx, end := startOp(ctx, r.db, "Update", tableComments)
	defer end(&err)

	var comment models.Comment
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyPatch(tx, &comment, id, patch.Columns())
	})
	if err != nil {
		return nil, lookupError(err, "Comment", id)
	}
	return &comment, nil
}

// Delete removes one comment. Comments own nothing, so there is no cascade.
func (r *commentRepository) Delete(ctx context.Context, id uint) (_ models.DeleteResult, err error) {
	ctx, end := startOp(ctx, r.db, "Delete", tableComments)
	defer end(&err)

	del := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if err = del.Error; err != nil {
		return models.DeleteResult{}, storeError(err)
	}
	return models.DeleteResult{Affected: del.RowsAffected}, nil
}

// List returns comments in id order. When both filters are set the post
// filter wins and the author filter is ignored.
func (r *commentRepository) List(ctx context.Context, filter models.ListFilter) (_ []models.Comment, err error) {
	ctx, end := startOp(ctx, r.db, "List", tableComments)
	defer end(&err)

	q := r.db.WithContext(ctx).Order("id ASC")
	switch {
	case filter.PostID != nil:
		q = q.Where("post_id = ?", *filter.PostID)
	case filter.AuthorID != nil:
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	comments := []models.Comment{}
	if err = q.Find(&comments).Error; err != nil {
		return nil, storeError(err)
	}
	return comments, nil
}

func (r *commentRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, end := startOp(ctx, r.db, "Count", tableComments)
	defer end(&err)

	if err = r.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error; err != nil {
		return 0, storeError(err)
	}
	return n, nil
}
