package queuerepo

import (
	"context"
	"errors"
	"time"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderQueue implements OrderQueue using GORM.
type GormOrderQueue struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderQueue creates a new GORM order queue.
func NewGormOrderQueue(db *gorm.DB) *GormOrderQueue {
	return &GormOrderQueue{
		db:  db,
		now: time.Now,
	}
}

// Enqueue stores the order snapshot. Enqueueing an order that is already
// queued replaces its snapshot and keeps its place in line.
func (q *GormOrderQueue) Enqueue(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, q.now().UTC())
	return q.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"number", "store_name", "document"},
			),
		}).
		Create(&dto).Error
}

// Dequeue removes and returns the oldest queued order. The row is locked
// with SKIP LOCKED so concurrent drains never hand out the same order.
// Returns errs.ErrObjectNotFound when the queue is empty.
func (q *GormOrderQueue) Dequeue(ctx context.Context) (*order.Order, error) {
	var dto QueuedOrderDTO

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Order("enqueued_at, order_id").
			First(&dto).Error
		if findErr != nil {
			return findErr
		}

		return tx.Delete(&QueuedOrderDTO{}, "order_id = ?", dto.OrderID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("queued order", nil)
		}
		return nil, err
	}

	return toDomain(dto)
}
