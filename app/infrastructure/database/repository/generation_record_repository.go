package repository

import (
	"context"

	"gorm.io/gorm"

	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/infrastructure/database/dbschema"
	"tileworld.ai/sprite-gateway/app/utils/functional"
)

// GenerationRecordRepository is the gorm-backed genlog.RecordRepository.
type GenerationRecordRepository struct {
	db *gorm.DB
}

func NewGenerationRecordRepository(db *gorm.DB) *GenerationRecordRepository {
	return &GenerationRecordRepository{db: db}
}

func (r *GenerationRecordRepository) Create(ctx context.Context, record *genlog.Record) error {
	schema := dbschema.NewSchemaGenerationRecord(record)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		return err
	}
	record.ID = schema.ID
	record.CreatedAt = schema.CreatedAt
	return nil
}

func (r *GenerationRecordRepository) List(ctx context.Context, limit int) ([]genlog.Record, error) {
	var rows []dbschema.GenerationRecord
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row dbschema.GenerationRecord) genlog.Record {
		return *row.EtoD()
	}), nil
}
