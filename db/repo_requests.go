package db

import (
	"context"
	"errors"
	"time"

	"lab_inventory_lending/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitRequest creates a pending borrow request. Stock is checked here only
// as an advisory courtesy to the caller; nothing is reserved until approval,
// so overlapping pending requests may together ask for more than is available
// and the first approval wins.
func (r *Repo) SubmitRequest(ctx context.Context, userID, itemID string, qty int) (*models.BorrowRequest, error) {
	if qty < 1 {
		return nil, NewValidationError("quantity must be at least 1")
	}

	it, err := r.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.Available < qty {
		return nil, ErrInsufficientStock
	}

	req := &models.BorrowRequest{
		ID:       uuid.NewString(),
		UserID:   userID,
		ItemID:   it.ID,
		Status:   models.StatusPending,
		Quantity: qty,
		DueDate:  time.Now().UTC().Add(models.DefaultLoanPeriod),
	}
	if err := r.DB.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveRequest reserves stock and marks the request approved as one atomic
// unit. The stock check lives in the WHERE clause of the counter update, so
// concurrent approvals racing for the same item serialize at the database:
// exactly one wins, the rest see RowsAffected == 0.
func (r *Repo) ApproveRequest(ctx context.Context, requestID, reviewerID string) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			return mapNotFound(err)
		}

		next, ok := models.NextStatus(req.Status, models.ActionApprove)
		if !ok {
			return ErrRequestNotPending
		}

		// One active approved borrow per (user, item). The partial unique
		// index backstops this count for writers we did not see.
		var n int64
		if err := tx.Model(&models.BorrowRequest{}).
			Where("user_id = ? AND item_id = ? AND status = ? AND returned_at IS NULL",
				req.UserID, req.ItemID, models.StatusApproved).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrActiveBorrowExists
		}

		res := tx.Model(&models.Item{}).
			Where("id = ? AND available >= ?", req.ItemID, req.Quantity).
			Updates(map[string]any{
				"available": gorm.Expr("available - ?", req.Quantity),
				"in_use":    gorm.Expr("in_use + ?", req.Quantity),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.Item{}).
				Where("id = ?", req.ItemID).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return ErrNotFound
			}
			return ErrInsufficientStock
		}

		now := time.Now().UTC()
		req.Status = next
		req.ReviewedAt = &now
		req.ReviewedBy = &reviewerID
		if err := tx.Save(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrActiveBorrowExists
			}
			return err
		}

		return logAction(tx, &models.AuditLog{
			ActorID:   reviewerID,
			Action:    models.AuditRequestApproved,
			ItemID:    &req.ItemID,
			RequestID: &req.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RejectRequest is terminal and deliberately never touches the ledger:
// nothing was reserved at submission.
func (r *Repo) RejectRequest(ctx context.Context, requestID, reviewerID string) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			return mapNotFound(err)
		}

		next, ok := models.NextStatus(req.Status, models.ActionReject)
		if !ok {
			return ErrRequestNotPending
		}

		now := time.Now().UTC()
		req.Status = next
		req.ReviewedAt = &now
		req.ReviewedBy = &reviewerID
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		return logAction(tx, &models.AuditLog{
			ActorID:   reviewerID,
			Action:    models.AuditRequestRejected,
			ItemID:    &req.ItemID,
			RequestID: &req.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ReturnRequest releases reserved stock and marks the request returned in the
// same transaction. available is clamped at total and in_use floored at zero;
// a clamp firing means an earlier bookkeeping error, not a new one.
func (r *Repo) ReturnRequest(ctx context.Context, requestID, actorID string) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			return mapNotFound(err)
		}

		next, ok := models.NextStatus(req.Status, models.ActionReturn)
		if !ok || req.ReturnedAt != nil {
			return ErrRequestNotActive
		}

		res := tx.Model(&models.Item{}).
			Where("id = ?", req.ItemID).
			Updates(map[string]any{
				"available": gorm.Expr("LEAST(available + ?, total)", req.Quantity),
				"in_use":    gorm.Expr("GREATEST(in_use - ?, 0)", req.Quantity),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		now := time.Now().UTC()
		req.Status = next
		req.ReturnedAt = &now
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		return logAction(tx, &models.AuditLog{
			ActorID:   actorID,
			Action:    models.AuditRequestReturned,
			ItemID:    &req.ItemID,
			RequestID: &req.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListMyRequests returns the caller's own requests, newest first.
func (r *Repo) ListMyRequests(ctx context.Context, userID string, p PageParams) (Paginated[models.BorrowRequest], error) {
	tx := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Paginated[models.BorrowRequest]{}, err
	}

	var reqs []models.BorrowRequest
	if err := tx.
		Preload("Item").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&reqs).Error; err != nil {
		return Paginated[models.BorrowRequest]{}, err
	}
	return NewPaginated(reqs, total, p), nil
}

// ListRequests is the reviewer-side listing, optionally filtered by status.
func (r *Repo) ListRequests(ctx context.Context, status models.RequestStatus, p PageParams) (Paginated[models.BorrowRequest], error) {
	tx := r.DB.WithContext(ctx).Model(&models.BorrowRequest{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Paginated[models.BorrowRequest]{}, err
	}

	var reqs []models.BorrowRequest
	if err := tx.
		Preload("Item").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&reqs).Error; err != nil {
		return Paginated[models.BorrowRequest]{}, err
	}
	return NewPaginated(reqs, total, p), nil
}
