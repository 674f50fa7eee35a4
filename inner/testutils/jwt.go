package testutils

import (
	"time"

	"empdir/inner/web"

	"github.com/golang-jwt/jwt/v5"
)

// TestJwtSecret секрет для подписи токенов в тестах
const TestJwtSecret = "test-secret"

// GenerateToken выдаёт валидный токен для вызова защищённых маршрутов в тестах
func GenerateToken(userId int64, username string) string {
	claims := web.AuthClaims{
		UserId:   userId,
		Username: username,
		Email:    username + "@test.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString([]byte(TestJwtSecret))
	return signedToken
}

func GenerateExpiredToken() string {
	claims := jwt.MapClaims{
		"sub":  "1234567890",
		"name": "Test User",
		"iat":  time.Now().Add(-2 * time.Hour).Unix(), // создан 2 часа назад
		"exp":  time.Now().Add(-1 * time.Hour).Unix(), // истёк 1 час назад
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString([]byte(TestJwtSecret))
	return signedToken
}
