package db

import (
	"context"
	"fmt"

	"lab_inventory_lending/models"

	"gorm.io/gorm"
)

// logAction inserts an audit row on the given handle, which may be a
// transaction so the entry commits or rolls back with the mutation it records.
func logAction(tx *gorm.DB, entry *models.AuditLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// LogAction records a standalone administrative action.
func (r *Repo) LogAction(ctx context.Context, entry *models.AuditLog) error {
	return logAction(r.DB.WithContext(ctx), entry)
}

func (r *Repo) ListAuditLogs(ctx context.Context, p PageParams) (Paginated[models.AuditLog], error) {
	tx := r.DB.WithContext(ctx).Model(&models.AuditLog{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Paginated[models.AuditLog]{}, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&logs).Error; err != nil {
		return Paginated[models.AuditLog]{}, err
	}
	return NewPaginated(logs, total, p), nil
}
