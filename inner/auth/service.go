package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"empdir/inner/common"
	"empdir/inner/validator"
	"empdir/inner/web"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DatabaseUnavailableMessage сообщение для отказа из-за недоступной базы.
// Клиент обязан показать его дословно, отличая от отказа по учётным данным
const DatabaseUnavailableMessage = "Database connection error. Please make sure the database is running."

const tokenTtl = 24 * time.Hour

type Service struct {
	repo      Repo
	validator Validator
	hasher    PasswordHasher
	cfg       common.Config
	logger    *common.Logger
}

type Repo interface {
	FindByUsername(ctx context.Context, username string) (Entity, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Save(ctx context.Context, user *Entity) error
	Ping(ctx context.Context) error
}

type Validator interface {
	Validate(request any) error
}

// PasswordHasher позволяет подменить bcrypt в тестах
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// функция-конструктор
func NewService(repo Repo, validator Validator, hasher PasswordHasher, cfg common.Config, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Signup регистрирует нового пользователя и сразу выдаёт сессию
func (svc *Service) Signup(ctx context.Context, request SignupRequest) (SessionResponse, error) {
	svc.logger.Info("Signing up new user", zap.String("username", request.Username))

	if err := svc.validateRequest(request, request.Username); err != nil {
		return SessionResponse{}, err
	}

	isExist, err := svc.repo.ExistsByUsernameOrEmail(ctx, request.Username, request.Email)
	if err != nil {
		return SessionResponse{}, svc.classifyDbError(ctx, "error checking existing user", err)
	}
	if isExist {
		svc.logger.Warn("User already exists", zap.String("username", request.Username))
		return SessionResponse{}, common.AlreadyExistsError{Message: "User with this username or email already exists"}
	}

	passwordHash, err := svc.hasher.Hash(request.Password)
	if err != nil {
		svc.logger.Error("Failed to hash password",
			zap.String("username", request.Username),
			zap.Error(err))
		return SessionResponse{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := Entity{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: passwordHash,
	}
	if err := svc.repo.Save(ctx, &user); err != nil {
		return SessionResponse{}, svc.classifyDbError(ctx, "error saving user", err)
	}

	token, err := svc.issueToken(user)
	if err != nil {
		return SessionResponse{}, err
	}

	svc.logger.Info("User signed up successfully",
		zap.String("username", user.Username),
		zap.Int64("id", user.Id))

	return SessionResponse{Token: token, User: user.toUserResponse()}, nil
}

// Login проверяет учётные данные и выдаёт сессию
func (svc *Service) Login(ctx context.Context, request LoginRequest) (SessionResponse, error) {
	svc.logger.Info("Logging in user", zap.String("username", request.Username))

	if err := svc.validateRequest(request, request.Username); err != nil {
		return SessionResponse{}, err
	}

	user, err := svc.repo.FindByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			svc.logger.Warn("Login rejected: unknown username", zap.String("username", request.Username))
			return SessionResponse{}, common.UnauthorizedError{Message: "Invalid username or password"}
		}
		return SessionResponse{}, svc.classifyDbError(ctx, "error finding user", err)
	}

	if err := svc.hasher.Compare(user.PasswordHash, request.Password); err != nil {
		svc.logger.Warn("Login rejected: wrong password", zap.String("username", request.Username))
		return SessionResponse{}, common.UnauthorizedError{Message: "Invalid username or password"}
	}

	token, err := svc.issueToken(user)
	if err != nil {
		return SessionResponse{}, err
	}

	svc.logger.Info("User logged in successfully", zap.String("username", user.Username))
	return SessionResponse{Token: token, User: user.toUserResponse()}, nil
}

// выпуск подписанного токена с данными пользователя
func (svc *Service) issueToken(user Entity) (string, error) {
	claims := web.AuthClaims{
		UserId:   user.Id,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTtl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(svc.cfg.JwtSecret))
	if err != nil {
		svc.logger.Error("Failed to sign token",
			zap.String("username", user.Username),
			zap.Error(err))
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

func (svc *Service) validateRequest(request any, username string) error {
	err := svc.validator.Validate(request)
	if err == nil {
		return nil
	}

	svc.logger.Error("Auth request validation failed",
		zap.String("username", username),
		zap.Error(err))

	if validationErr, ok := err.(validator.ValidationErrors); ok {
		fields := make([]common.FieldError, len(validationErr.Errors))
		for i, fieldErr := range validationErr.Errors {
			fields[i] = common.FieldError{Field: fieldErr.Field, Message: fieldErr.Message}
		}
		return common.RequestValidationError{
			Message: "Data validation error",
			Fields:  fields,
		}
	}
	return common.RequestValidationError{Message: err.Error()}
}

// classifyDbError отличает обрыв соединения с базой от прочих ошибок:
// для первого случая клиент показывает отдельное сообщение
func (svc *Service) classifyDbError(ctx context.Context, msg string, err error) error {
	svc.logger.Error(msg, zap.Error(err))
	if pingErr := svc.repo.Ping(ctx); pingErr != nil {
		svc.logger.Error("Database is unreachable", zap.Error(pingErr))
		return common.DatabaseUnavailableError{Message: DatabaseUnavailableMessage}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
