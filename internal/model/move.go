package model

import "time"

// Move — переезд пользователя. Владелец определяется по username,
// удаление пользователя каскадно удаляет его переезды.
type Move struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Location string    `gorm:"not null"`
	Date     time.Time `gorm:"not null"`

	Username string `gorm:"not null;index"` // ссылка на users.username, FK объявлен в model.User
}
