package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// RequestCounterRepository hands out yearly registration numbers.
type RequestCounterRepository interface {
	// Next returns the next registration number for a year: 1 on the first
	// call, then strictly increasing with no gaps. Concurrent callers for
	// the same year are serialized by a row lock.
	Next(ctx context.Context, year int) (int64, error)
}

type requestCounterRepo struct {
	db *gorm.DB
}

// NewRequestCounterRepo creates the gorm-backed RequestCounterRepository.
func NewRequestCounterRepo(db *gorm.DB) RequestCounterRepository {
	return &requestCounterRepo{db: db}
}

func (r *requestCounterRepo) Next(ctx context.Context, year int) (int64, error) {
	var number int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = nextNumber(tx, year)
		return err
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

// nextNumber increments the per-year counter inside the caller's
// transaction and returns the new value. The SELECT ... FOR UPDATE
// serializes concurrent writers for the same year.
func nextNumber(tx *gorm.DB, year int) (int64, error) {
	var counter model.RequestCounter
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&counter).Error
	switch {
	case err == nil:
		// existing row, locked
	case errors.Is(err, gorm.ErrRecordNotFound):
		counter = model.RequestCounter{Year: year}
		// a concurrent first insert for the same year surfaces as a
		// duplicate-key error and aborts the transaction; the caller
		// retries the whole operation
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	counter.LastNumber++
	if err := tx.Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastNumber, nil
}
