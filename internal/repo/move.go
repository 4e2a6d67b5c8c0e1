package repo

import (
	"QRBoxer/internal/model"
	"context"

	"gorm.io/gorm"
)

// MoveRepository определяет контракт доступа к переездам.
type MoveRepository interface {
	Create(ctx context.Context, m *model.Move) error

	// GetByID возвращает переезд или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Move, error)

	// ListByUsername возвращает переезды пользователя по возрастанию даты.
	ListByUsername(ctx context.Context, username string) ([]model.Move, error)

	// ListAll — все переезды, нужен только администратору.
	ListAll(ctx context.Context) ([]model.Move, error)

	Update(ctx context.Context, id int64, updates map[string]any) error

	// Delete удаляет переезд; коробки и вещи снимаются каскадом.
	Delete(ctx context.Context, id int64) error
}

type moveRepo struct {
	db *gorm.DB
}

// NewMoveRepository создаёт реализацию репозитория для Move.
func NewMoveRepository(db *gorm.DB) MoveRepository {
	return &moveRepo{db: db}
}

func (r *moveRepo) Create(ctx context.Context, m *model.Move) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *moveRepo) GetByID(ctx context.Context, id int64) (*model.Move, error) {
	var m model.Move
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *moveRepo) ListByUsername(ctx context.Context, username string) ([]model.Move, error) {
	var moves []model.Move
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date ASC").
		Find(&moves).Error
	return moves, err
}

func (r *moveRepo) ListAll(ctx context.Context) ([]model.Move, error) {
	var moves []model.Move
	err := r.db.WithContext(ctx).Order("date ASC").Find(&moves).Error
	return moves, err
}

func (r *moveRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.Move{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moveRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Move{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
