package storage

import (
	"context"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"gorm.io/gorm"
)

type GormClickStore struct {
	db *gorm.DB
}

func NewGormClickStore(db *gorm.DB) *GormClickStore {
	return &GormClickStore{db: db}
}

func (s *GormClickStore) Insert(ctx context.Context, event *models.ClickEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *GormClickStore) FindByLink(ctx context.Context, linkID uint) ([]models.ClickEvent, error) {
	var events []models.ClickEvent
	result := s.db.WithContext(ctx).Where("link_id = ?", linkID).Order("timestamp desc").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (s *GormClickStore) DeleteByLink(ctx context.Context, linkID uint) error {
	return s.db.WithContext(ctx).Where("link_id = ?", linkID).Delete(&models.ClickEvent{}).Error
}

func (s *GormClickStore) CountUniqueIPs(ctx context.Context, linkID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ClickEvent{}).
		Where("link_id = ?", linkID).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

func (s *GormClickStore) CountPerDay(ctx context.Context, linkID uint, since time.Time) ([]DailyClicks, error) {
	var rows []DailyClicks
	err := s.db.WithContext(ctx).Model(&models.ClickEvent{}).
		Select("to_char(timestamp, 'YYYY-MM-DD') as day, count(*) as clicks").
		Where("link_id = ? AND timestamp >= ?", linkID, since).
		Group("day").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
