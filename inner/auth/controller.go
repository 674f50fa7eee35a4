package auth

import (
	"context"
	"errors"

	"empdir/inner/common"
	"empdir/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server      *web.Server
	authService Svc
	logger      *common.Logger
}

// интерфейс сервиса auth.Service
type Svc interface {
	Signup(ctx context.Context, request SignupRequest) (SessionResponse, error)
	Login(ctx context.Context, request LoginRequest) (SessionResponse, error)
}

func NewController(server *web.Server, authService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:      server,
		authService: authService,
		logger:      logger,
	}
}

// функция для регистрации маршрутов.
// signup и login публичные, logout требует токена
func (c *Controller) RegisterRoutes() {
	api := c.server.GroupApiV1
	api.Post("/auth/signup", c.Signup)
	api.Post("/auth/login", c.Login)
	c.server.GroupApiV1Protected.Post("/auth/logout", c.Logout)
}

// функция-хендлер регистрации нового пользователя
func (c *Controller) Signup(ctx *fiber.Ctx) error {
	var request SignupRequest
	if err := ctx.BodyParser(&request); err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse signup request body",
			zap.Error(err),
			zap.String("ip", ctx.IP()))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	session, err := c.authService.Signup(ctx.UserContext(), request)
	if err != nil {
		c.logger.WarnCtx(ctx, "signup failed",
			zap.String("username", request.Username),
			zap.Error(err))
		return c.errorResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "User signed up",
		zap.String("username", request.Username),
		zap.String("ip", ctx.IP()))
	return common.CreatedResponse(ctx, session)
}

// функция-хендлер входа по имени пользователя и паролю
func (c *Controller) Login(ctx *fiber.Ctx) error {
	var request LoginRequest
	if err := ctx.BodyParser(&request); err != nil {
		c.logger.WarnCtx(ctx, "Failed to parse login request body",
			zap.Error(err),
			zap.String("ip", ctx.IP()))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	session, err := c.authService.Login(ctx.UserContext(), request)
	if err != nil {
		c.logger.WarnCtx(ctx, "login failed",
			zap.String("username", request.Username),
			zap.Error(err))
		return c.errorResponse(ctx, err)
	}

	return common.OkResponse(ctx, session)
}

// Logout ничего не инвалидирует на сервере: токены не хранятся.
// Клиент очищает своё локальное состояние независимо от этого ответа
func (c *Controller) Logout(ctx *fiber.Ctx) error {
	claims := web.CurrentUser(ctx)
	c.logger.InfoCtx(ctx, "User logged out", zap.String("username", claims.Username))
	return common.OkResponse(ctx, "Logged out")
}

// единая трансляция ошибок сервиса в HTTP-статусы
func (c *Controller) errorResponse(ctx *fiber.Ctx, err error) error {
	var validationErr common.RequestValidationError
	switch {
	case errors.As(err, &validationErr):
		return common.ValidationErrResponse(ctx, validationErr.Message, validationErr.Fields)
	case errors.As(err, &common.AlreadyExistsError{}):
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &common.UnauthorizedError{}):
		return common.ErrResponse(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.As(err, &common.DatabaseUnavailableError{}):
		return common.ErrResponse(ctx, fiber.StatusServiceUnavailable, err.Error())
	default:
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
