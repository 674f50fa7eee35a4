package web

import (
	"time"

	"empdir/inner/common"

	_ "empdir/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// структуа веб-сервера
type Server struct {
	App *fiber.App
	// группа публичного API
	GroupApi fiber.Router
	// группа публичного API первой версии
	GroupApiV1 fiber.Router
	// группа непубличного API
	GroupInternal fiber.Router
	// группа защищённого API (требует аутентификации)
	GroupApiV1Protected fiber.Router
}

// функция-конструктор
func NewServer(cfg common.Config, logger *common.Logger) *Server {

	// создаём новый веб-вервер.
	// Лимит тела поднят над стандартными 4 MB: загрузка картинки профиля
	// в 5 MiB плюс накладные расходы multipart должны проходить
	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: 8 * 1024 * 1024,
	})

	// Middleware для восстановления от паники
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Middleware для добавления уникального ID к каждому запросу
	app.Use(requestid.New())

	groupInternal := app.Group("/internal")

	// Middleware для внутренних маршрутов
	groupInternal.Use(func(c *fiber.Ctx) error {
		// дополнительная проверка для внутренних маршрутов
		c.Set("X-Internal-API", "true")
		return c.Next()
	})

	// создаём группу "/api"
	groupApi := app.Group("/api")

	// создаём подгруппу "api/v1"
	groupApiV1 := groupApi.Group("/v1")

	// Middleware для API v1
	groupApiV1.Use(func(c *fiber.Ctx) error {
		// Добавляем заголовок версии API
		c.Set("X-API-Version", "v1")
		return c.Next()
	})

	// Создаём защищённую группу с JWT middleware.
	// Авторизация бинарная: либо запрос аутентифицирован, либо нет
	groupApiV1Protected := groupApiV1.Group("/")
	groupApiV1Protected.Use(AuthMiddleware(cfg, logger))

	return &Server{
		App:                 app,
		GroupApi:            groupApi,
		GroupApiV1:          groupApiV1,
		GroupInternal:       groupInternal,
		GroupApiV1Protected: groupApiV1Protected,
	}
}

func CustomMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Логирование начала запроса
		logger.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		// Выполняется следующий handler
		err := c.Next()

		// Логирование завершения запроса
		duration := time.Since(start)
		logger.Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", duration),
		)

		return err
	}
}
