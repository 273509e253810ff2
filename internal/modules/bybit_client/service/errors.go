package service

import (
	"errors"
	"fmt"
)

// Три различимых класса ошибок клиента: транспорт, ответ биржи со сбойным
// retCode и неожиданная форма JSON. Хэндлеры и тесты ветвятся по типу,
// а не по тексту сообщения.

// TransportError — сеть, таймаут, не-2xx статус.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bybit transport error (%s): %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError — биржа ответила, но retCode != 0.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bybit api error: retCode=%d retMsg=%s", e.Code, e.Msg)
}

// ShapeError — ответ распарсился, но ожидаемое поле отсутствует
// или имеет не тот тип.
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bybit invalid data format: field %q", e.Field)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
