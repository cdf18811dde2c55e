package models

import "time"

const ItemTable = "lab_items"

// Item is one stock-keeping unit of the lab inventory. The four counters are
// shared mutable state: every borrow approval and return moves quantity
// between available and in_use.
type Item struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000;not null" json:"description"`

	// Role allowed to manage this item.
	AssignedRole string `gorm:"size:20;not null;default:'admin'" json:"assignedRole"`

	Total     int `gorm:"not null;default:0" json:"total"`
	Available int `gorm:"not null;default:0" json:"available"`
	Damaged   int `gorm:"not null;default:0" json:"damaged"`
	InUse     int `gorm:"not null;default:0" json:"inUse"`

	// Optional scan code; unique when present.
	QRCode *string `gorm:"size:120;uniqueIndex" json:"qrCode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }

// CountsValid reports whether the conservation invariant holds:
// total == available + damaged + in_use, with no negative counter.
func (it *Item) CountsValid() bool {
	if it.Total < 0 || it.Available < 0 || it.Damaged < 0 || it.InUse < 0 {
		return false
	}
	return it.Total == it.Available+it.Damaged+it.InUse
}
