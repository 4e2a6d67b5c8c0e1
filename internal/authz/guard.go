// Package authz — решение о доступе к ресурсу иерархии владения.
// Само восстановление цепочки (Item -> Box -> Move -> User) делает
// сервисный слой; сюда попадает уже найденный владелец. Оборванная
// цепочка до сюда не доходит: она отдаётся как NotFound, чтобы не
// раскрывать существование чужих ресурсов.
package authz

import (
	"QRBoxer/internal/auth"
	"errors"
)

// ErrForbidden — аутентифицирован, но не владелец и не администратор.
var ErrForbidden = errors.New("forbidden")

// Authorize разрешает доступ владельцу ресурса и администратору.
// Функция без состояния: решение зависит только от аргументов.
func Authorize(id auth.Identity, owner string) error {
	if id.Admin {
		return nil
	}
	if id.Username != "" && id.Username == owner {
		return nil
	}
	return ErrForbidden
}
