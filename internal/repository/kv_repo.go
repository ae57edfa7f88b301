package repository

import (
	"context"

	"smartinvoice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository stores opaque string values under logical keys.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type keyValueRepository struct {
	db *gorm.DB
}

func NewKeyValueRepository(db *gorm.DB) KeyValueRepository {
	return &keyValueRepository{db: db}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, error) {
	var entry model.KVEntry
	if err := GetDB(ctx, r.db).First(&entry, "key = ?", key).Error; err != nil {
		return "", notFound(err)
	}
	return entry.Value, nil
}

func (r *keyValueRepository) Put(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	return GetDB(ctx, r.db).Delete(&model.KVEntry{}, "key = ?", key).Error
}
