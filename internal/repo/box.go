package repo

import (
	"QRBoxer/internal/model"
	"context"

	"gorm.io/gorm"
)

// BoxRepository определяет контракт доступа к коробкам.
type BoxRepository interface {
	Create(ctx context.Context, b *model.Box) error

	// GetByID возвращает коробку или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Box, error)

	// GetByQRCode находит коробку по коду наклейки.
	GetByQRCode(ctx context.Context, code string) (*model.Box, error)

	// ListByMove возвращает коробки переезда.
	ListByMove(ctx context.Context, moveID int64) ([]model.Box, error)

	Update(ctx context.Context, id int64, updates map[string]any) error

	// Delete удаляет коробку; вещи снимаются каскадом.
	Delete(ctx context.Context, id int64) error
}

type boxRepo struct {
	db *gorm.DB
}

// NewBoxRepository создаёт реализацию репозитория для Box.
func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &boxRepo{db: db}
}

func (r *boxRepo) Create(ctx context.Context, b *model.Box) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *boxRepo) GetByID(ctx context.Context, id int64) (*model.Box, error) {
	var b model.Box
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *boxRepo) GetByQRCode(ctx context.Context, code string) (*model.Box, error) {
	var b model.Box
	if err := r.db.WithContext(ctx).Where("qr_code = ?", code).Take(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *boxRepo) ListByMove(ctx context.Context, moveID int64) ([]model.Box, error) {
	var boxes []model.Box
	err := r.db.WithContext(ctx).
		Where("move_id = ?", moveID).
		Order("id ASC").
		Find(&boxes).Error
	return boxes, err
}

func (r *boxRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.Box{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *boxRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Box{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
