package employee

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) FindById(ctx context.Context, id int64) (employee Entity, err error) {
	err = r.db.GetContext(ctx, &employee, "SELECT * FROM employees WHERE id = $1", id)
	return employee, err
}

func (r *Repository) FindAll(ctx context.Context) ([]Entity, error) {
	var employees []Entity
	err := r.db.SelectContext(ctx, &employees, "SELECT * FROM employees ORDER BY id")
	return employees, err
}

// Search ищет по заданным фильтрам. Пустая строка означает отсутствие
// фильтра и не попадает в запрос; заданные фильтры соединяются через AND
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria) ([]Entity, error) {
	var employees []Entity
	var conditions []string
	var args []any

	if criteria.Department != "" {
		args = append(args, criteria.Department)
		conditions = append(conditions, "department = $"+strconv.Itoa(len(args)))
	}
	if criteria.Position != "" {
		args = append(args, criteria.Position)
		conditions = append(conditions, "position = $"+strconv.Itoa(len(args)))
	}

	query := "SELECT * FROM employees"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	err := r.db.SelectContext(ctx, &employees, query, args...)
	return employees, err
}

// Update полностью заменяет запись. Колонка с картинкой затрагивается
// только когда была загружена новая (replacePicture)
func (r *Repository) Update(ctx context.Context, employee *Entity, replacePicture bool) (int64, error) {
	var result sql.Result
	var err error
	if replacePicture {
		result, err = r.db.ExecContext(ctx,
			`UPDATE employees SET first_name = $1, last_name = $2, email = $3, phone_number = $4,
				department = $5, position = $6, salary = $7, date_of_joining = $8,
				profile_picture_url = $9, updated_at = NOW()
			WHERE id = $10`,
			employee.FirstName, employee.LastName, employee.Email, employee.PhoneNumber,
			employee.Department, employee.Position, employee.Salary, employee.DateOfJoining,
			employee.ProfilePictureUrl, employee.Id,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE employees SET first_name = $1, last_name = $2, email = $3, phone_number = $4,
				department = $5, position = $6, salary = $7, date_of_joining = $8, updated_at = NOW()
			WHERE id = $9`,
			employee.FirstName, employee.LastName, employee.Email, employee.PhoneNumber,
			employee.Department, employee.Position, employee.Salary, employee.DateOfJoining,
			employee.Id,
		)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *Repository) DeleteById(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *Repository) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// в рамках транзакции проверяем наличие сотрудника с таким же email
func (r *Repository) ExistsByEmailTx(ctx context.Context, tx *sqlx.Tx, email string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)", email)
	return exists, err
}

func (r *Repository) SaveTx(ctx context.Context, tx *sqlx.Tx, employee Entity) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO employees (first_name, last_name, email, phone_number, department, position,
			salary, date_of_joining, profile_picture_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		employee.FirstName, employee.LastName, employee.Email, employee.PhoneNumber,
		employee.Department, employee.Position, employee.Salary, employee.DateOfJoining,
		employee.ProfilePictureUrl,
	).Scan(&id)
	return id, err
}
