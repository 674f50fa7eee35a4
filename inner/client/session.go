package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// User отображаемая личность аутентифицированного пользователя
type User struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session выданный токен плюс личность
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionStore процессное состояние аутентификации:
// Unauthenticated -> Authenticated -> Unauthenticated.
// Мутации атомарны относительно читателей; промежуточного состояния
// "выполняется вход" на этом уровне нет
type SessionStore struct {
	mu      sync.RWMutex
	session *Session
	path    string
	logger  *zap.Logger
}

// NewSessionStore создаёт хранилище сессии. Если по указанному пути найдена
// ранее сохранённая сессия, хранилище сразу переходит в Authenticated без
// повторной проверки токена: устаревший токен обнаружится на первом
// защищённом вызове
func NewSessionStore(path string, logger *zap.Logger) *SessionStore {
	store := &SessionStore{path: path, logger: logger}
	store.restore()
	return store
}

func (s *SessionStore) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to read persisted session", zap.Error(err))
		}
		return
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("Persisted session is corrupted, ignoring", zap.Error(err))
		return
	}
	if session.Token == "" {
		return
	}

	s.session = &session
	s.logger.Info("Session restored", zap.String("username", session.User.Username))
}

// Login переводит хранилище в Authenticated и сохраняет сессию на диск
func (s *SessionStore) Login(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	s.persist()
}

// Logout безусловно переводит хранилище в Unauthenticated
// и удаляет сохранённую сессию
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to remove persisted session", zap.Error(err))
	}
}

// Current возвращает текущую сессию, если она есть
func (s *SessionStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Authenticated сообщает, аутентифицирован ли пользователь
func (s *SessionStore) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *SessionStore) persist() {
	data, err := json.Marshal(s.session)
	if err != nil {
		s.logger.Warn("Failed to marshal session", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("Failed to persist session", zap.Error(err))
	}
}
