package repository

import (
	"context"
	"errors"

	"github.com/ecotrade/marketplace/internal/model"
	"gorm.io/gorm"
)

type PostRepository interface {
	UpsertMaterial(ctx context.Context, name, category string) (uint64, error)
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	FindDetail(ctx context.Context, id uint64) (*model.PostDetail, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.PostDetail, error)
	ListOthers(ctx context.Context, excludeOwnerID uint64) ([]model.PostDetail, error)
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// UpsertMaterial returns the id of the material with the given (name,
// category) pair, creating it if absent. The composite unique index makes a
// concurrent double-create collapse to one row; the loser of that race
// re-reads the winner's row.
func (r *postRepository) UpsertMaterial(ctx context.Context, name, category string) (uint64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	m := model.Material{Name: name, Category: category}
	err := r.db.WithContext(ctx).
		Where("material_name = ? AND material_category = ?", name, category).
		FirstOrCreate(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if err := r.db.WithContext(ctx).
			Where("material_name = ? AND material_category = ?", name, category).
			First(&m).Error; err != nil {
			return 0, err
		}
		return m.ID, nil
	}
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, materials.material_name, materials.material_category, users.name AS user_name").
		Joins("JOIN materials ON posts.material_id = materials.id").
		Joins("JOIN users ON posts.user_id = users.id")
}

func (r *postRepository) FindDetail(ctx context.Context, id uint64) (*model.PostDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var detail model.PostDetail
	if err := r.detailQuery(ctx).
		Where("posts.id = ?", id).
		Take(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]model.PostDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.PostDetail
	if err := r.detailQuery(ctx).
		Where("posts.user_id = ?", ownerID).
		Order("posts.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postRepository) ListOthers(ctx context.Context, excludeOwnerID uint64) ([]model.PostDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.PostDetail
	if err := r.detailQuery(ctx).
		Where("posts.user_id <> ?", excludeOwnerID).
		Order("posts.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postRepository) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
