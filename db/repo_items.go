package db

import (
	"context"
	"errors"

	"lab_inventory_lending/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateItem persists a new item. When no allocation is supplied everything
// starts available; any caller-supplied split must satisfy the conservation
// invariant.
func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	if it.Available == 0 && it.Damaged == 0 && it.InUse == 0 {
		it.Available = it.Total
	}
	if !it.CountsValid() {
		return NewValidationError(
			"invalid quantities: total (%d) != available (%d) + damaged (%d) + inUse (%d)",
			it.Total, it.Available, it.Damaged, it.InUse,
		)
	}
	if err := r.DB.WithContext(ctx).Create(it).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateQRCode
		}
		return err
	}
	return nil
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (r *Repo) FindItemByQRCode(ctx context.Context, code string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).Where("qr_code = ?", code).First(&it).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context, p PageParams) (Paginated[models.Item], error) {
	tx := r.DB.WithContext(ctx).Model(&models.Item{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Paginated[models.Item]{}, err
	}

	var items []models.Item
	if err := tx.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&items).Error; err != nil {
		return Paginated[models.Item]{}, err
	}
	return NewPaginated(items, total, p), nil
}

// ItemUpdate is a partial administrative edit; nil fields are left untouched.
type ItemUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	AssignedRole *string `json:"assignedRole"`
	Total        *int    `json:"total"`
	Available    *int    `json:"available"`
	Damaged      *int    `json:"damaged"`
	InUse        *int    `json:"inUse"`
	QRCode       *string `json:"qrCode"`
}

// UpdateItem applies a partial edit under a row lock and re-validates the
// conservation invariant against the resulting counters before committing.
// On failure the item is left unchanged.
func (r *Repo) UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*models.Item, error) {
	var it models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", id).Error; err != nil {
			return mapNotFound(err)
		}

		if upd.Name != nil {
			it.Name = *upd.Name
		}
		if upd.Description != nil {
			it.Description = *upd.Description
		}
		if upd.AssignedRole != nil {
			it.AssignedRole = *upd.AssignedRole
		}
		if upd.Total != nil {
			it.Total = *upd.Total
		}
		if upd.Available != nil {
			it.Available = *upd.Available
		}
		if upd.Damaged != nil {
			it.Damaged = *upd.Damaged
		}
		if upd.InUse != nil {
			it.InUse = *upd.InUse
		}
		if upd.QRCode != nil {
			it.QRCode = upd.QRCode
		}

		if !it.CountsValid() {
			return NewValidationError(
				"invalid quantities: total (%d) != available (%d) + damaged (%d) + inUse (%d)",
				it.Total, it.Available, it.Damaged, it.InUse,
			)
		}

		if err := tx.Save(&it).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateQRCode
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// DeleteItem hard-deletes. Historical borrow requests keep their item_id for
// audit even though the reference no longer resolves.
func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
