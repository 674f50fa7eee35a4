package common

type RequestValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (err RequestValidationError) Error() string {
	return err.Message
}

type AlreadyExistsError struct {
	Message string `json:"message"`
}

func (err AlreadyExistsError) Error() string {
	return err.Message
}

// NotFoundError представляет ошибку, когда сущность не найдена
type NotFoundError struct {
	Message string `json:"message"`
}

func (err NotFoundError) Error() string {
	return err.Message
}

// NewNotFoundError создаёт новую ошибку "not found"
func NewNotFoundError(message string) error {
	return NotFoundError{Message: message}
}

// UnauthorizedError представляет отказ из-за неверных учётных данных
type UnauthorizedError struct {
	Message string `json:"message"`
}

func (err UnauthorizedError) Error() string {
	return err.Message
}

// DatabaseUnavailableError сигнализирует о недоступности базы данных.
// Клиент показывает для неё отдельное человекочитаемое сообщение,
// отличное от отказа по учётным данным.
type DatabaseUnavailableError struct {
	Message string `json:"message"`
}

func (err DatabaseUnavailableError) Error() string {
	return err.Message
}
