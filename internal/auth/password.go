package auth

import "golang.org/x/crypto/bcrypt"

// Hasher — обёртка над bcrypt с настраиваемым work factor.
// Открытый пароль нигде не сохраняется и не логируется.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. При cost <= 0 берётся bcrypt.DefaultCost.
func NewHasher(cost int) Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля (соль генерируется внутри bcrypt).
func (h Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает пароль с хешем. Повреждённый или чужой дайджест —
// просто false, без ошибки наружу.
func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
