package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"empdir/inner/common"
	"empdir/inner/web"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) FindByUsername(ctx context.Context, username string) (Entity, error) {
	args := m.Called(username)
	return args.Get(0).(Entity), args.Error(1)
}

func (m *MockRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) Save(ctx context.Context, user *Entity) error {
	args := m.Called(user)
	user.Id = 7
	return args.Error(0)
}

func (m *MockRepo) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(request any) error {
	args := m.Called(request)
	return args.Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

func createTestLogger() *common.Logger {
	cfg := common.Config{
		DbDriverName:   "postgres",
		Dsn:            "localhost port=5432 user=wronguser password=wrongpass dbname=postgres sslmode=disable",
		AppName:        "test_app",
		AppVersion:     "1.0.0",
		LogLevel:       "DEBUG",
		LogDevelopMode: true,
	}
	return common.NewLogger(cfg)
}

func testConfig() common.Config {
	return common.Config{JwtSecret: "test-secret"}
}

func TestService_Signup(t *testing.T) {
	t.Run("Successful signup issues a session", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)
		mockHasher := new(MockHasher)

		request := SignupRequest{Username: "ada", Email: "ada@example.com", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("ExistsByUsernameOrEmail", "ada", "ada@example.com").Return(false, nil)
		mockHasher.On("Hash", "secret1").Return("$2a$10$hash", nil)
		mockRepo.On("Save", mock.MatchedBy(func(user *Entity) bool {
			return user.Username == "ada" && user.PasswordHash == "$2a$10$hash"
		})).Return(nil)

		service := NewService(mockRepo, mockValidator, mockHasher, testConfig(), createTestLogger())

		session, err := service.Signup(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, int64(7), session.User.Id)
		assert.Equal(t, "ada", session.User.Username)
		assert.NotEmpty(t, session.Token)

		// токен подписан нашим секретом и несёт данные пользователя
		claims := &web.AuthClaims{}
		parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, int64(7), claims.UserId)
		assert.Equal(t, "ada", claims.Username)

		mockRepo.AssertExpectations(t)
		mockHasher.AssertExpectations(t)
	})

	t.Run("Duplicate username or email", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)

		request := SignupRequest{Username: "ada", Email: "ada@example.com", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("ExistsByUsernameOrEmail", "ada", "ada@example.com").Return(true, nil)

		service := NewService(mockRepo, mockValidator, new(MockHasher), testConfig(), createTestLogger())

		_, err := service.Signup(context.Background(), request)

		assert.Error(t, err)
		assert.IsType(t, common.AlreadyExistsError{}, err)
		mockRepo.AssertNotCalled(t, "Save")
	})

	t.Run("Validation error", func(t *testing.T) {
		mockValidator := new(MockValidator)
		request := SignupRequest{Username: "ab"}
		mockValidator.On("Validate", request).Return(errors.New("Username must contain at least 3 characters"))

		service := NewService(new(MockRepo), mockValidator, new(MockHasher), testConfig(), createTestLogger())

		_, err := service.Signup(context.Background(), request)

		assert.Error(t, err)
		assert.IsType(t, common.RequestValidationError{}, err)
	})

	t.Run("Unreachable database is reported distinctly", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)

		request := SignupRequest{Username: "ada", Email: "ada@example.com", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("ExistsByUsernameOrEmail", "ada", "ada@example.com").
			Return(false, errors.New("connection refused"))
		mockRepo.On("Ping").Return(errors.New("connection refused"))

		service := NewService(mockRepo, mockValidator, new(MockHasher), testConfig(), createTestLogger())

		_, err := service.Signup(context.Background(), request)

		require.Error(t, err)
		assert.IsType(t, common.DatabaseUnavailableError{}, err)
		assert.Equal(t, DatabaseUnavailableMessage, err.Error())
	})
}

func TestService_Login(t *testing.T) {
	storedUser := Entity{
		Id:           7,
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
	}

	t.Run("Successful login", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)
		mockHasher := new(MockHasher)

		request := LoginRequest{Username: "ada", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("FindByUsername", "ada").Return(storedUser, nil)
		mockHasher.On("Compare", "$2a$10$hash", "secret1").Return(nil)

		service := NewService(mockRepo, mockValidator, mockHasher, testConfig(), createTestLogger())

		session, err := service.Login(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, "ada", session.User.Username)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("Unknown username", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)

		request := LoginRequest{Username: "ghost", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("FindByUsername", "ghost").Return(Entity{}, sql.ErrNoRows)

		service := NewService(mockRepo, mockValidator, new(MockHasher), testConfig(), createTestLogger())

		_, err := service.Login(context.Background(), request)

		require.Error(t, err)
		assert.IsType(t, common.UnauthorizedError{}, err)
		assert.Equal(t, "Invalid username or password", err.Error())
	})

	t.Run("Wrong password yields the same message as unknown username", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)
		mockHasher := new(MockHasher)

		request := LoginRequest{Username: "ada", Password: "wrong"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("FindByUsername", "ada").Return(storedUser, nil)
		mockHasher.On("Compare", "$2a$10$hash", "wrong").Return(errors.New("hash mismatch"))

		service := NewService(mockRepo, mockValidator, mockHasher, testConfig(), createTestLogger())

		_, err := service.Login(context.Background(), request)

		require.Error(t, err)
		assert.IsType(t, common.UnauthorizedError{}, err)
		assert.Equal(t, "Invalid username or password", err.Error())
	})

	t.Run("Unreachable database on login", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockValidator := new(MockValidator)

		request := LoginRequest{Username: "ada", Password: "secret1"}

		mockValidator.On("Validate", request).Return(nil)
		mockRepo.On("FindByUsername", "ada").Return(Entity{}, errors.New("connection refused"))
		mockRepo.On("Ping").Return(errors.New("connection refused"))

		service := NewService(mockRepo, mockValidator, new(MockHasher), testConfig(), createTestLogger())

		_, err := service.Login(context.Background(), request)

		require.Error(t, err)
		assert.IsType(t, common.DatabaseUnavailableError{}, err)
		assert.Equal(t, DatabaseUnavailableMessage, err.Error())
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{}

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}
