package model

// Box — коробка в рамках переезда. QRCode — идентификатор наклейки,
// генерируется при создании и не меняется.
type Box struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Room   string `gorm:"not null"`
	QRCode string `gorm:"uniqueIndex;size:36"`

	MoveID int64 `gorm:"not null;index"` // ссылка на moves.id
	Move   *Move `gorm:"foreignKey:MoveID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
