package web

import (
	"empdir/inner/common"

	jwtMiddleware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	JwtKey = "jwt"
)

// AuthClaims полезная нагрузка токена: идентификатор и отображаемая личность
type AuthClaims struct {
	UserId   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// middleware для JWT аутентификации
func AuthMiddleware(cfg common.Config, logger *common.Logger) fiber.Handler {
	config := jwtMiddleware.Config{
		ContextKey:   JwtKey,
		ErrorHandler: createJwtErrorHandler(logger),
		SigningKey:   jwtMiddleware.SigningKey{Key: []byte(cfg.JwtSecret)},
		Claims:       &AuthClaims{},
	}
	return jwtMiddleware.New(config)
}

// извлекает данные аутентифицированного пользователя из контекста
func CurrentUser(c *fiber.Ctx) *AuthClaims {
	token := c.Locals(JwtKey).(*jwt.Token)
	return token.Claims.(*AuthClaims)
}

func createJwtErrorHandler(logger *common.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		// Добавление X-Request-ID в заголовок ответа
		requestID := ctx.Get("X-Request-ID")
		if requestID == "" {
			if reqID, ok := ctx.Locals("requestid").(string); ok {
				requestID = reqID
			}
		}
		ctx.Set("X-Request-ID", requestID)

		logger.WarnCtx(ctx, "authentication failed",
			zap.Error(err),
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()))

		// Если токен не может быть прочитан, то возвращаем 401
		return common.ErrResponse(
			ctx,
			fiber.StatusUnauthorized,
			err.Error(),
		)
	}
}
