package repository

import (
	"context"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetWithRelations(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uint) (models.DeleteResult, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger(tableUsers)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, end := startOp(ctx, r.db, "Create", tableUsers)
	defer end(&err)

	if err = r.db.WithContext(ctx).Create(user).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (_ *models.User, err error) {
	ctx, end := startOp(ctx, r.db, "GetByID", tableUsers)
	defer end(&err)

	var user models.User
	if err = r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

// GetWithRelations loads the user with its posts and authored comments from
// one snapshot.
func (r *userRepository) GetWithRelations(ctx context.Context, id uint) (_ *models.User, err error) {
	ctx, end := startOp(ctx, r.db, "GetWithRelations", tableUsers)
	defer end(&err)

	var user models.User
	err = database.ReadSnapshot(ctx, r.db, func(tx *gorm.DB) error {
		return tx.
			Preload("Posts", orderByID).
			Preload("Comments", orderByID).
			First(&user, id).Error
	})
	if err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, patch models.UserPatch) (_ *models.User, err error) {
	ctx, end := startOp(ctx, r.db, "Update", tableUsers)
	defer end(&err)

	var user models.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyPatch(tx, &user, id, patch.Columns())
	})
	if err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

// Delete removes the user, every post it owns, and every comment that is
// either authored by it or attached to one of its posts. The user row is
// locked before the dependent sets are read so nothing can be attached
// mid-delete.
func (r *userRepository) Delete(ctx context.Context, id uint) (res models.DeleteResult, err error) {
	ctx, end := startOp(ctx, r.db, "Delete", tableUsers)
	defer end(&err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = models.DeleteResult{}
		found, err := lockRow(tx, &models.User{}, id)
		if err != nil || !found {
			return err
		}

		var postIDs []uint
		if err := forUpdate(tx.Model(&models.Post{})).
			Where("author_id = ?", id).
			Order("id ASC").
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		commentQuery := tx.Model(&models.Comment{}).Where("author_id = ?", id)
		if len(postIDs) > 0 {
			commentQuery = commentQuery.Or("post_id IN ?", postIDs)
		}
		var commentIDs []uint
		if err := forUpdate(commentQuery).Order("id ASC").Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if len(postIDs) > 0 {
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		del := tx.Delete(&models.User{}, id)
		if del.Error != nil {
			return del.Error
		}
		res = models.DeleteResult{Affected: del.RowsAffected, Posts: postIDs, Comments: commentIDs}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.DeleteResult{}, storeError(err)
	}
	if res.Affected > 0 {
		r.log.LogDelete(ctx, id, len(res.Posts), len(res.Comments))
	}
	return res, nil
}

func (r *userRepository) List(ctx context.Context) (_ []models.User, err error) {
	ctx, end := startOp(ctx, r.db, "List", tableUsers)
	defer end(&err)

	users := []models.User{}
	if err = r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, end := startOp(ctx, r.db, "Count", tableUsers)
	defer end(&err)

	if err = r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, storeError(err)
	}
	return n, nil
}
