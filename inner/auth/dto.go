package auth

import "time"

type Entity struct {
	Id           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (e *Entity) toUserResponse() UserResponse {
	return UserResponse{
		Id:       e.Id,
		Username: e.Username,
		Email:    e.Email,
	}
}

// SignupRequest учётные данные регистрации.
// Поле подтверждения пароля - артефакт клиентской валидации,
// по проводу оно не передаётся
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
} // @name SignupRequest

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
} // @name LoginRequest

type UserResponse struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
} // @name User

// SessionResponse выданный токен плюс отображаемая личность
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
} // @name Session
