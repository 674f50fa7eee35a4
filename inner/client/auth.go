package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// SignupDraft черновик регистрации. ConfirmPassword существует только для
// клиентской валидации и никогда не передаётся по проводу
type SignupDraft struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials учётные данные входа
type Credentials struct {
	Username string
	Password string
}

// signupPayload то, что реально уходит на сервер: без подтверждения пароля
type signupPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup регистрирует пользователя; успешная регистрация сразу
// сохраняет сессию в хранилище
func (c *Client) Signup(ctx context.Context, draft SignupDraft) (Session, error) {
	payload, err := json.Marshal(signupPayload{
		Username: draft.Username,
		Email:    draft.Email,
		Password: draft.Password,
	})
	if err != nil {
		return Session{}, &Error{Kind: KindLocalValidation, Message: err.Error()}
	}

	var session Session
	err = c.do(ctx, http.MethodPost, "/auth/signup", nil, bytes.NewReader(payload), "application/json",
		"Signup failed. Please try again.", &session)
	if err != nil {
		return Session{}, err
	}

	c.session.Login(session)
	return session, nil
}

// Login обменивает учётные данные на сессию и сохраняет её
func (c *Client) Login(ctx context.Context, credentials Credentials) (Session, error) {
	payload, err := json.Marshal(loginPayload{
		Username: credentials.Username,
		Password: credentials.Password,
	})
	if err != nil {
		return Session{}, &Error{Kind: KindLocalValidation, Message: err.Error()}
	}

	var session Session
	err = c.do(ctx, http.MethodPost, "/auth/login", nil, bytes.NewReader(payload), "application/json",
		"Login failed. Please check your credentials.", &session)
	if err != nil {
		return Session{}, err
	}

	c.session.Login(session)
	return session, nil
}

// Logout завершает сессию. Удалённый вызов выполняется по возможности;
// локальное состояние очищается безусловно, даже при обрыве транспорта
func (c *Client) Logout(ctx context.Context) {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, "",
		"Logout failed.", nil); err != nil {
		c.logger.Warn("Remote logout failed, clearing local session anyway", zap.Error(err))
	}

	c.session.Logout()
}
