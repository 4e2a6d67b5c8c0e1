package auth

// Identity — подтверждённая личность запроса: кто и с какой ролью.
// Заполняется из проверенного токена, дальше по слоям передаётся по значению.
type Identity struct {
	Username string
	Admin    bool
}
