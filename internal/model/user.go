package model

// User — учётная запись. Username является первичным ключом,
// пароль хранится только в виде bcrypt-хеша.
// Связь объявлена со стороны родителя, чтобы внешний ключ лёг на
// moves.username: удаление пользователя каскадно снимает его переезды.
type User struct {
	Username string `gorm:"primaryKey;size:64"`
	Password string `gorm:"not null"`
	Email    string `gorm:"not null"`
	Admin    bool   `gorm:"not null;default:false"`

	Moves []Move `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
