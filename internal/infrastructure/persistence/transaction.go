package persistence

import (
	"context"

	"github.com/invoiceme/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTxManager implements shared.TxManager on a GORM connection.
// The transaction handle travels in the context, so repositories built
// on dbFromContext automatically join an open transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

var _ shared.TxManager = (*GormTxManager)(nil)

// InTx runs fn inside a database transaction. The context passed to fn
// carries the transaction; if fn returns an error the transaction rolls
// back.
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the ambient transaction instead of opening a
	// second one.
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// txFromContext returns the transaction stored in ctx, or nil
func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// dbFromContext returns the ambient transaction if one is open,
// otherwise the repository's own connection
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
