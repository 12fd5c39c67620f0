package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solpay/internal/models"
)

var ErrHistoryNotFound = errors.New("history item not found")

const DefaultHistoryLimit = 100

type HistoryRepository interface {
	Create(ctx context.Context, item *models.HistoryItem) error
	// Upsert inserts item or replaces the stored item with the same id.
	Upsert(ctx context.Context, item *models.HistoryItem) error
	Get(ctx context.Context, id string) (*models.HistoryItem, error)
	// List returns matching items newest first.
	List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryItem, error)
	All(ctx context.Context) ([]models.HistoryItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, item *models.HistoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *historyRepository) Upsert(ctx context.Context, item *models.HistoryItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(item).Error
}

func (r *historyRepository) Get(ctx context.Context, id string) (*models.HistoryItem, error) {
	var item models.HistoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHistoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *historyRepository) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryItem, error) {
	q := r.db.WithContext(ctx).Model(&models.HistoryItem{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.From > 0 {
		q = q.Where("timestamp >= ?", filter.From)
	}
	if filter.To > 0 {
		q = q.Where("timestamp <= ?", filter.To)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		q = q.Where(`(LOWER(label) LIKE ? ESCAPE '\' OR LOWER(recipient) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var items []models.HistoryItem
	err := q.Order("timestamp DESC").Order("id").Limit(limit).Find(&items).Error
	return items, err
}

func (r *historyRepository) All(ctx context.Context) ([]models.HistoryItem, error) {
	var items []models.HistoryItem
	err := r.db.WithContext(ctx).Order("timestamp DESC").Order("id").Find(&items).Error
	return items, err
}

func (r *historyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HistoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

func (r *historyRepository) Clear(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.HistoryItem{})
	return result.RowsAffected, result.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
