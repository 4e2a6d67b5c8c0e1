package service

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя. Хендлеры мапят их на HTTP-статусы,
// ничего лишнего наружу не раскрывая.
var (
	// ErrInvalidCredentials — логин не удался. Нарочно не различает
	// «нет такого пользователя» и «неверный пароль».
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrValidation — некорректный вход create/update операции.
	ErrValidation = errors.New("validation failed")

	// ErrUsernameTaken — регистрация с занятым username; подвид валидации.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrValidation)

	// ErrNotFound — сущность отсутствует либо цепочка владения оборвана.
	ErrNotFound = errors.New("not found")

	// ErrUserDeleteDenied — удаление учётной записи выключено политикой.
	ErrUserDeleteDenied = errors.New("user deletion is disabled by policy")
)
