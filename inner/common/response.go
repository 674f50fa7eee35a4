package common

import (
	"github.com/gofiber/fiber/v2"
)

// FieldError одна ошибка валидации, привязанная к конкретному полю
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
} // @name FieldError

// Response единый конверт ответа API.
// Клиенты разбирают ошибки в порядке приоритета: сначала message,
// затем первый элемент errors, иначе подставляют свой текст по умолчанию.
type Response[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Data    T            `json:"data,omitempty"`
} // @name Response

func ErrResponse(
	c *fiber.Ctx,
	code int,
	message string,
) error {
	return c.Status(code).JSON(Response[any]{
		Success: false,
		Message: message,
	})
}

// ValidationErrResponse формирует ответ с ошибками валидации по полям
func ValidationErrResponse(
	c *fiber.Ctx,
	message string,
	fieldErrors []FieldError,
) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response[any]{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

func OkResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.JSON(&Response[T]{
		Success: true,
		Data:    data,
	})
}

// CreatedResponse формирует ответ с кодом 201 для успешно созданных ресурсов
func CreatedResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.Status(fiber.StatusCreated).JSON(&Response[T]{
		Success: true,
		Data:    data,
	})
}
