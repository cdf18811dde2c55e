package db

import (
	"context"
	"errors"
	"strings"

	"lab_inventory_lending/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.classifyUserConflict(ctx, u)
		}
		return err
	}
	return nil
}

// classifyUserConflict decides which unique column a failed user insert hit.
// The translated gorm error carries no constraint name, so look for the
// colliding row instead.
func (r *Repo) classifyUserConflict(ctx context.Context, u *models.User) error {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", u.Email).
		Count(&n).Error
	if err == nil && n > 0 {
		return ErrDuplicateEmail
	}
	return ErrDuplicatePhone
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}

// ListUsers returns a page of users, optionally filtered by a case-insensitive
// match on name or email.
func (r *Repo) ListUsers(ctx context.Context, q string, p PageParams) (Paginated[models.User], error) {
	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Paginated[models.User]{}, err
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&users).Error; err != nil {
		return Paginated[models.User]{}, err
	}
	return NewPaginated(users, total, p), nil
}
