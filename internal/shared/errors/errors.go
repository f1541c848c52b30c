// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат, тип вне enum и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (единое сообщение, чтобы не палить существование email)
	ErrInvalidCredentials = errors.New("invalid email or password")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Email уже занят
	ErrAlreadyExists = errors.New("email already registered")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для транзакций
var (
	// Тип транзакции вне закрытого enum income|expense
	ErrUnknownTransactionType = errors.New("transaction type must be income or expense")
	// Транзакция не существует или принадлежит другому пользователю
	ErrTransactionNotFound = errors.New("transaction not found")
)
