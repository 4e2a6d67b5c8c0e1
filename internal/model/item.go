package model

// Item — вещь, уложенная в коробку. Image — строковая ссылка на
// изображение (сам файл хранится вовне).
type Item struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Description string `gorm:"not null"`
	Image       string

	BoxID int64 `gorm:"not null;index"` // ссылка на boxes.id
	Box   *Box  `gorm:"foreignKey:BoxID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
