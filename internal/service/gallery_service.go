package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

type GalleryService interface {
	List(ctx context.Context, query string) ([]*repository.GalleryItem, error)
	Create(ctx context.Context, input CreateGalleryInput) (*repository.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type CreateGalleryInput struct {
	Title    *string
	ImageURL string `validate:"required"`
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	announcer   Announcer
	validate    *validator.Validate
}

func NewGalleryService(galleryRepo repository.GalleryRepository, announcer Announcer, v *validator.Validate) GalleryService {
	return &galleryService{galleryRepo: galleryRepo, announcer: announcer, validate: v}
}

func (s *galleryService) List(ctx context.Context, query string) ([]*repository.GalleryItem, error) {
	items, err := s.galleryRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]*repository.GalleryItem, 0, len(items))
	for _, item := range items {
		if matches(query, item.Title, &item.ImageURL) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *galleryService) Create(ctx context.Context, input CreateGalleryInput) (*repository.GalleryItem, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := s.validate.Struct(input); err != nil {
		return nil, invalid("Image URL is required")
	}

	item := &repository.GalleryItem{
		Title:    optional(input.Title),
		ImageURL: input.ImageURL,
	}
	if err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	message := "A new photo was added to the gallery."
	if item.Title != nil {
		message = *item.Title + " was added to the gallery."
	}
	if _, err := s.announcer.Record(ctx, types.CategoryGallery, "New Gallery Item", message); err != nil {
		logger.FromContext(ctx).Warn("gallery item stored without in-app notification", zap.String("id", item.ID))
	}

	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.galleryRepo.Delete(ctx, id))
}
