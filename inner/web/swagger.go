package web

import (
	"github.com/gofiber/swagger"
)

// возвращает конфигурацию Swagger UI
func GetSwaggerConfig() swagger.Config {
	return swagger.Config{
		// URL для получения OpenAPI спецификации
		URL: "/swagger/doc.json",

		// Включить deep linking
		DeepLinking: true,

		// Настройки раскрытия разделов по умолчанию
		DocExpansion: "none",

		// Включить валидацию запросов
		ValidatorUrl: "",

		// Дополнительные настройки UI
		DefaultModelsExpandDepth: 1,
		DefaultModelExpandDepth:  1,
		DefaultModelRendering:    "model",

		// Токен вводится вручную через кнопку Authorize (Bearer <token>)
		PersistAuthorization: true,
	}
}

// RegisterSwaggerRoutes регистрирует маршрут Swagger UI
func RegisterSwaggerRoutes(server *Server) {
	server.App.Get("/swagger/*", swagger.New(GetSwaggerConfig()))
}
