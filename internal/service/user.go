package service

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/authz"
	"QRBoxer/internal/config"
	"QRBoxer/internal/model"
	"QRBoxer/internal/repo"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// UserService — регистрация, логин и удаление учётных записей.
type UserService struct {
	repo         repo.UserRepository
	hasher       auth.Hasher
	deletePolicy string
}

// NewUserService создаёт UserService. deletePolicy — см. config.UserDelete*.
func NewUserService(r repo.UserRepository, hasher auth.Hasher, deletePolicy string) *UserService {
	return &UserService{repo: r, hasher: hasher, deletePolicy: deletePolicy}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
// Занятый username — ErrUsernameTaken, а не «сырая» ошибка БД.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateUser(ctx, &model.User{
		Username: username,
		Password: hash,
		Email:    email,
	})
	// гонка с параллельной регистрацией: вставка упёрлась в уникальность
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUsernameTaken
	}
	return created, err
}

// Login проверяет пару логин/пароль. Любая причина отказа —
// один и тот же ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Delete удаляет учётную запись. Разрешено самому пользователю
// или администратору, и только при политике cascade: каскад внешних
// ключей снимает переезды, коробки и вещи одной транзакцией.
func (s *UserService) Delete(ctx context.Context, id auth.Identity, username string) error {
	if err := authz.Authorize(id, username); err != nil {
		return err
	}
	if s.deletePolicy != config.UserDeleteCascade {
		return ErrUserDeleteDenied
	}
	err := s.repo.DeleteUser(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
