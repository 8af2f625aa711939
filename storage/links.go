package storage

import (
	"context"
	"errors"

	"github.com/Gautam5514/url-shortner/models"
	"gorm.io/gorm"
)

type GormLinkStore struct {
	db *gorm.DB
}

func NewGormLinkStore(db *gorm.DB) *GormLinkStore {
	return &GormLinkStore{db: db}
}

func (s *GormLinkStore) FindByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	result := s.db.WithContext(ctx).Where("short_code = ?", code).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &link, nil
}

func (s *GormLinkStore) FindByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	result := s.db.WithContext(ctx).First(&link, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &link, nil
}

func (s *GormLinkStore) FindByUser(ctx context.Context, userID uint) ([]models.Link, error) {
	var links []models.Link
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&links)
	if result.Error != nil {
		return nil, result.Error
	}
	return links, nil
}

func (s *GormLinkStore) Insert(ctx context.Context, link *models.Link) error {
	result := s.db.WithContext(ctx).Create(link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return result.Error
	}
	return nil
}

// Update writes only the owner-editable columns. The clicks counter is left
// alone so a concurrent increment is never overwritten with a stale read.
func (s *GormLinkStore) Update(ctx context.Context, link *models.Link) error {
	return s.db.WithContext(ctx).Model(link).
		Select("original_url", "title", "description", "status").
		Updates(link).Error
}

func (s *GormLinkStore) IncrementClicks(ctx context.Context, id uint, delta int64) error {
	return s.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", delta)).Error
}

func (s *GormLinkStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", id).Delete(&models.ClickEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Link{}, id).Error
	})
}
