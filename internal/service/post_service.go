package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/repository"
	"github.com/ecotrade/marketplace/internal/storage"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

// PostInput carries the mutable fields of a post; images travel separately
// as an optional ImageUpload.
type PostInput struct {
	MaterialName     string
	MaterialCategory string
	Quantity         float64
	Unit             string
	Condition        string
	Description      string
	Price            float64
	Location         string
	AvailableDate    string
}

type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type PostService interface {
	Create(ctx context.Context, ownerID uint64, in PostInput, image *ImageUpload) (*model.Post, error)
	Get(ctx context.Context, postID uint64) (*model.PostDetail, error)
	ListMine(ctx context.Context, ownerID uint64) ([]model.PostDetail, error)
	ListOthers(ctx context.Context, ownerID uint64) ([]model.PostDetail, error)
	Update(ctx context.Context, postID, ownerID uint64, in PostInput, image *ImageUpload) error
	Delete(ctx context.Context, postID, ownerID uint64) error
}

type postService struct {
	postRepo repository.PostRepository
	images   storage.ImageStore
}

func NewPostService(postRepo repository.PostRepository, images storage.ImageStore) PostService {
	return &postService{postRepo: postRepo, images: images}
}

func (in *PostInput) validate() error {
	in.MaterialName = strings.TrimSpace(in.MaterialName)
	in.MaterialCategory = strings.TrimSpace(in.MaterialCategory)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.MaterialName == "" || in.MaterialCategory == "" {
		return errors.New("material name and category are required")
	}
	if in.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if in.Unit == "" {
		return errors.New("unit is required")
	}
	if in.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (s *postService) Create(ctx context.Context, ownerID uint64, in PostInput, image *ImageUpload) (*model.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	materialID, err := s.postRepo.UpsertMaterial(ctx, in.MaterialName, in.MaterialCategory)
	if err != nil {
		return nil, err
	}

	var imagePath *string
	if image != nil {
		p, err := s.images.Save(image.Filename, image.Reader)
		if err != nil {
			return nil, err
		}
		imagePath = &p
	}

	post := &model.Post{
		UserID:        ownerID,
		MaterialID:    materialID,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		Condition:     in.Condition,
		Description:   in.Description,
		Price:         in.Price,
		Location:      in.Location,
		AvailableDate: in.AvailableDate,
		ImagePath:     imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, postID uint64) (*model.PostDetail, error) {
	detail, err := s.postRepo.FindDetail(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *postService) ListMine(ctx context.Context, ownerID uint64) ([]model.PostDetail, error) {
	return s.postRepo.ListByOwner(ctx, ownerID)
}

func (s *postService) ListOthers(ctx context.Context, ownerID uint64) ([]model.PostDetail, error) {
	return s.postRepo.ListOthers(ctx, ownerID)
}

func (s *postService) Update(ctx context.Context, postID, ownerID uint64, in PostInput, image *ImageUpload) error {
	if err := in.validate(); err != nil {
		return err
	}
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != ownerID {
		return ErrForbidden
	}

	materialID, err := s.postRepo.UpsertMaterial(ctx, in.MaterialName, in.MaterialCategory)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"material_id":      materialID,
		"quantity":         in.Quantity,
		"unit":             in.Unit,
		"condition_status": in.Condition,
		"description":      in.Description,
		"price":            in.Price,
		"location":         in.Location,
		"available_date":   in.AvailableDate,
	}
	// image path changes only when a new file was uploaded
	if image != nil {
		p, err := s.images.Save(image.Filename, image.Reader)
		if err != nil {
			return err
		}
		fields["image_path"] = p
	}
	return s.postRepo.Update(ctx, postID, fields)
}

func (s *postService) Delete(ctx context.Context, postID, ownerID uint64) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != ownerID {
		// absent and not-owned look the same to the caller
		return ErrNotFound
	}
	return s.postRepo.Delete(ctx, postID)
}
