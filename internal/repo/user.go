package repo

import (
	"QRBoxer/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// UserRepository определяет контракт доступа к учётным записям.
type UserRepository interface {
	// CreateUser вставляет нового пользователя.
	// Повторный username — gorm.ErrDuplicatedKey.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByUsername возвращает пользователя или gorm.ErrRecordNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// DeleteUser удаляет пользователя; каскад снимает его переезды,
	// коробки и вещи на уровне внешних ключей.
	DeleteUser(ctx context.Context, username string) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, gorm.ErrDuplicatedKey
		}
		return nil, err
	}
	return user, nil
}

// isUniqueViolation распознаёт нарушение уникальности по драйверам:
// modernc sqlite отдаёт текст "UNIQUE constraint failed",
// postgres — SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "23505")
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) DeleteUser(ctx context.Context, username string) error {
	tx := r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
