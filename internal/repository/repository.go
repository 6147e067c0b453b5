package repository

import (
	"context"
	"errors"

	"passcheq/internal/storage"
	"passcheq/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRepository stores catalog blobs in a SQL table. It satisfies
// storage.Store.
type RecordRepository interface {
	storage.Store
	AutoMigrate() error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// Get 按键读取记录
func (r *recordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.Record
	err := r.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Put 插入或覆盖记录
func (r *recordRepository) Put(ctx context.Context, key string, value []byte) error {
	rec := models.Record{Key: key, Value: string(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

func (r *recordRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("record_key = ?", key).Delete(&models.Record{}).Error
}

// AutoMigrate 自动迁移数据库表
func (r *recordRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&models.Record{})
}
