package auth

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewUserRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (user Entity, err error) {
	err = r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	return user, err
}

func (r *Repository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)", username, email)
	return exists, err
}

func (r *Repository) Save(ctx context.Context, user *Entity) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		user.Username, user.Email, user.PasswordHash,
	).Scan(&user.Id)
	return err
}

// Ping проверяет доступность базы данных; используется сервисом,
// чтобы отличить обрыв соединения от прочих ошибок
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
