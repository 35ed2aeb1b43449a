package repository

import (
	"context"
	"errors"
	"fmt"

	"profilematch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetActiveByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	Deactivate(ctx context.Context, id uint) error
	FindCandidates(ctx context.Context, requester *models.User) ([]models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}

		user.ID = 0
		user.IsActive = true
		return tx.Create(user).Error
	})
	return translate(err)
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	if skip < 0 || limit <= 0 {
		return users, nil
	}

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByID ignores the active flag; it backs the plain read endpoint.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetActiveByID backs every mutation and the match lookup.
func (r *userRepository) GetActiveByID(ctx context.Context, id uint) (*models.User, error) {
	return findActive(r.db.WithContext(ctx), id)
}

func (r *userRepository) Update(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	var updated *models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findActive(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}

		if patch.Email != nil {
			taken, err := emailTaken(tx, *patch.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateEmail
			}
		}

		if err := savePatch(tx, user, patch); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// savePatch merges patch into user and writes only the patched columns. The
// write is guarded on is_active, so a deactivation committed after user was
// read makes it fail with ErrNotFound instead of reviving the record.
func savePatch(db *gorm.DB, user *models.User, patch models.UserPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	user.ApplyPatch(patch)
	result := db.Model(user).
		Where("is_active = ?", true).
		Select(patch.Columns()).
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The is_active guard in the WHERE clause makes a racing second
		// deactivation affect zero rows.
		result := tx.Model(&models.User{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *userRepository) FindCandidates(ctx context.Context, requester *models.User) ([]models.User, error) {
	candidates := []models.User{}
	err := r.db.WithContext(ctx).
		Where("id <> ? AND is_active = ? AND city = ? AND gender <> ?",
			requester.ID, true, requester.City, requester.Gender).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("find candidates for user %d: %w", requester.ID, err)
	}
	return candidates, nil
}

// EmailExists reports whether any record, active or not, holds email.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	taken, err := emailTaken(r.db.WithContext(ctx), email, 0)
	if err != nil {
		return false, translate(err)
	}
	return taken, nil
}

func findActive(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// emailTaken checks every record, active or inactive, except excludeID.
func emailTaken(db *gorm.DB, email string, excludeID uint) (bool, error) {
	query := db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicateEmail):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("user store: %w", err)
	}
}
