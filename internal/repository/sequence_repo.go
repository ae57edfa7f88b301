package repository

import (
	"context"
	"fmt"

	"smartinvoice/internal/model"

	"gorm.io/gorm"
)

// SequenceRepository hands out monotonically increasing numbers per named counter.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
	tx TransactionManager
}

func NewSequenceRepository(db *gorm.DB, tx TransactionManager) SequenceRepository {
	return &sequenceRepository{db: db, tx: tx}
}

// Next increments the counter and returns the new value. A missing counter starts at 1.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		res := db.Model(&model.Sequence{}).Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			seq := model.Sequence{Name: name, Value: 1}
			if err := db.Create(&seq).Error; err != nil {
				return err
			}
			value = seq.Value
			return nil
		}

		var seq model.Sequence
		if err := db.First(&seq, "name = ?", name).Error; err != nil {
			return err
		}
		value = seq.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return value, nil
}
