package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Client типизированный доступ к API каталога сотрудников.
// Токен сессии подставляется в каждый запрос автоматически; отсутствие
// сессии не проверяется локально - сервер ответит 401
type Client struct {
	baseUrl string
	http    *http.Client
	session *SessionStore
	logger  *zap.Logger
}

// New функция-конструктор клиента. baseUrl указывает на корень API,
// например "http://localhost:8080/api/v1"
func New(baseUrl string, session *SessionStore, logger *zap.Logger) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    &http.Client{},
		session: session,
		logger:  logger,
	}
}

// Session возвращает хранилище сессии клиента
func (c *Client) Session() *SessionStore {
	return c.session
}

// envelope зеркалит конверт ответа сервера
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []fieldError    `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// do выполняет запрос и разбирает конверт ответа. fallback подставляется,
// когда сервер не вернул структурированного сообщения
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, fallback string, out any) error {
	endpoint := c.baseUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fallback}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session, ok := c.session.Current(); ok {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &Error{Kind: KindNetwork, Message: fallback}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fallback}
	}

	var env envelope
	// тело может оказаться вовсе не JSON (прокси, падение до хендлера)
	_ = json.Unmarshal(respBody, &env)

	if resp.StatusCode >= 400 {
		return c.classifyFailure(resp.StatusCode, env, fallback)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.logger.Warn("Failed to decode response data",
				zap.String("path", path),
				zap.Error(err))
			return &Error{Kind: KindRemoteFailure, Message: fallback}
		}
	}
	return nil
}

// classifyFailure превращает ответ сервера в типизированную ошибку.
// Приоритет текста: message, затем первый элемент errors, затем fallback
func (c *Client) classifyFailure(status int, env envelope, fallback string) *Error {
	message := env.Message
	if message == "" && len(env.Errors) > 0 {
		message = env.Errors[0].Message
	}
	if message == "" {
		message = fallback
	}

	if status == http.StatusNotFound {
		return &Error{Kind: KindNotFound, Message: message}
	}

	if len(env.Errors) > 0 {
		fields := make(map[string]string, len(env.Errors))
		for _, fieldErr := range env.Errors {
			fields[fieldErr.Field] = fieldErr.Message
		}
		return &Error{Kind: KindRemoteValidation, Message: message, Fields: fields}
	}

	return &Error{Kind: KindRemoteFailure, Message: message}
}
