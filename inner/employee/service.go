package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"empdir/inner/common"
	"empdir/inner/validator"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Service struct {
	repo      Repo
	validator Validator
	pictures  PictureStore
	logger    *common.Logger
}

type Repo interface {
	FindById(ctx context.Context, id int64) (Entity, error)
	FindAll(ctx context.Context) ([]Entity, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Entity, error)
	Update(ctx context.Context, employee *Entity, replacePicture bool) (int64, error)
	DeleteById(ctx context.Context, id int64) (int64, error)
	BeginTransaction(ctx context.Context) (*sqlx.Tx, error)
	ExistsByEmailTx(ctx context.Context, tx *sqlx.Tx, email string) (bool, error)
	SaveTx(ctx context.Context, tx *sqlx.Tx, employee Entity) (int64, error)
}

type Validator interface {
	Validate(request any) error
}

// PictureStore интерфейс хранилища картинок профиля
type PictureStore interface {
	StorePicture(ctx context.Context, fileName, contentType string, size int64, file io.Reader) (string, error)
}

// PictureUpload уже прошедший проверку кандидат на загрузку
type PictureUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// функция-конструктор
func NewService(repo Repo, validator Validator, pictures PictureStore, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		pictures:  pictures,
		logger:    logger,
	}
}

// Метод для создания нового сотрудника.
// Запрос должен быть уже полностью собран контроллером; картинка
// опциональна и передаётся отдельно от скалярных полей
func (svc *Service) Create(ctx context.Context, request CreateRequest, picture *PictureUpload) (response Response, err error) {
	svc.logger.Info("Creating new employee",
		zap.String("email", request.Email),
		zap.String("department", request.Department))

	if err := svc.validateRequest(request); err != nil {
		return Response{}, err
	}

	// дата приёма по умолчанию - дата создания записи
	if request.DateOfJoining.IsZero() {
		request.DateOfJoining = time.Now()
	}

	// запрашиваем у репозитория новую транзакцию
	tx, err := svc.repo.BeginTransaction(ctx)
	if err != nil {
		svc.logger.Error("Failed to begin transaction for employee creation",
			zap.String("email", request.Email),
			zap.Error(err))
		return Response{}, fmt.Errorf("error create employee: error creating transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				svc.logger.Error("Failed to rollback transaction",
					zap.String("email", request.Email),
					zap.Error(rollbackErr))
			}
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				svc.logger.Error("Failed to commit transaction",
					zap.String("email", request.Email),
					zap.Error(commitErr))
				err = commitErr
			}
		}
	}()

	// в рамках транзакции проверяем наличие в базе данных сотрудника с таким же email
	isExist, err := svc.repo.ExistsByEmailTx(ctx, tx, request.Email)
	if err != nil {
		svc.logger.Error("Failed to check if employee exists",
			zap.String("email", request.Email),
			zap.Error(err))
		return Response{}, fmt.Errorf("error finding employee by email: %s, %w", request.Email, err)
	}
	if isExist {
		svc.logger.Warn("Employee with this email already exists",
			zap.String("email", request.Email))
		return Response{}, common.AlreadyExistsError{Message: fmt.Sprintf("employee with email %s already exists", request.Email)}
	}

	entity := request.ToEntity()

	if picture != nil {
		url, uploadErr := svc.pictures.StorePicture(ctx, picture.FileName, picture.ContentType, picture.Size, picture.File)
		if uploadErr != nil {
			err = uploadErr
			svc.logger.Error("Failed to store profile picture",
				zap.String("email", request.Email),
				zap.Error(err))
			return Response{}, fmt.Errorf("error storing profile picture: %w", err)
		}
		entity.ProfilePictureUrl = &url
	}

	newEmployeeId, err := svc.repo.SaveTx(ctx, tx, entity)
	if err != nil {
		svc.logger.Error("Failed to save new employee",
			zap.String("email", request.Email),
			zap.Error(err))
		return Response{}, fmt.Errorf("error creating employee with email: %s %w", request.Email, err)
	}

	svc.logger.Info("Employee created successfully",
		zap.String("email", request.Email),
		zap.Int64("id", newEmployeeId))

	entity.Id = newEmployeeId
	entity.CreatedAt = time.Now()
	entity.UpdatedAt = entity.CreatedAt
	return entity.toResponse(), nil
}

// валидация запроса на создание/обновление сотрудника
func (svc *Service) validateRequest(request CreateRequest) error {
	svc.logger.Debug("Validating employee request", zap.String("email", request.Email))

	err := svc.validator.Validate(request)
	if err != nil {
		svc.logger.Error("Employee request validation failed",
			zap.String("email", request.Email),
			zap.Error(err))

		if validationErr, ok := err.(validator.ValidationErrors); ok {
			return common.RequestValidationError{
				Message: "Data validation error",
				Fields:  toFieldErrors(validationErr),
			}
		}

		// Если это другая ошибка валидации, возвращаем её как есть
		return common.RequestValidationError{Message: err.Error()}
	}

	// зарплата не может быть отрицательной; ноль допустим
	if request.Salary.IsNegative() {
		return common.RequestValidationError{
			Message: "Salary must be a positive number",
			Fields:  []common.FieldError{{Field: "salary", Message: "Salary must be a positive number"}},
		}
	}

	return nil
}

func toFieldErrors(validationErr validator.ValidationErrors) []common.FieldError {
	fields := make([]common.FieldError, len(validationErr.Errors))
	for i, fieldErr := range validationErr.Errors {
		fields[i] = common.FieldError{Field: fieldErr.Field, Message: fieldErr.Message}
	}
	return fields
}

func (svc *Service) FindById(ctx context.Context, id int64) (Response, error) {
	svc.logger.Debug("Finding employee by ID", zap.Int64("id", id))

	var entity, err = svc.repo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			svc.logger.Warn("Employee not found", zap.Int64("id", id))
			return Response{}, common.NotFoundError{Message: "Employee not found"}
		}
		svc.logger.Error("Failed to find employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, fmt.Errorf("error finding employee with id %d: %w", id, err)
	}

	svc.logger.Debug("Employee found successfully", zap.Int64("id", id))
	return entity.toResponse(), nil
}

func (svc *Service) FindAll(ctx context.Context) ([]Response, error) {
	svc.logger.Debug("Finding all employees")

	entities, err := svc.repo.FindAll(ctx)
	if err != nil {
		svc.logger.Error("Failed to find all employees", zap.Error(err))
		return nil, fmt.Errorf("error finding all employees: %w", err)
	}

	responses := make([]Response, len(entities))
	for i, entity := range entities {
		responses[i] = entity.toResponse()
	}
	svc.logger.Debug("Found all employees", zap.Int("count", len(responses)))
	return responses, nil
}

// Search ищет сотрудников по критериям. Хотя бы один фильтр должен быть
// задан: запрос без фильтров - это ошибка валидации, а не выборка всего
func (svc *Service) Search(ctx context.Context, criteria SearchCriteria) ([]Response, error) {
	svc.logger.Debug("Searching employees",
		zap.String("department", criteria.Department),
		zap.String("position", criteria.Position))

	if criteria.IsEmpty() {
		return nil, common.RequestValidationError{
			Message: "Please select at least one search criteria (department or position)",
		}
	}

	entities, err := svc.repo.Search(ctx, criteria)
	if err != nil {
		svc.logger.Error("Failed to search employees",
			zap.String("department", criteria.Department),
			zap.String("position", criteria.Position),
			zap.Error(err))
		return nil, fmt.Errorf("error searching employees: %w", err)
	}

	responses := make([]Response, len(entities))
	for i, entity := range entities {
		responses[i] = entity.toResponse()
	}
	svc.logger.Debug("Search completed", zap.Int("count", len(responses)))
	return responses, nil
}

// Update полностью заменяет запись сотрудника. Картинка заменяется только
// когда передана новая: запрос без картинки оставляет прежнюю нетронутой
func (svc *Service) Update(ctx context.Context, id int64, request CreateRequest, picture *PictureUpload) (Response, error) {
	svc.logger.Info("Updating employee", zap.Int64("id", id))

	if err := svc.validateRequest(request); err != nil {
		return Response{}, err
	}

	existing, err := svc.repo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Response{}, common.NotFoundError{Message: "Employee not found"}
		}
		return Response{}, fmt.Errorf("error finding employee with id %d: %w", id, err)
	}

	entity := request.ToEntity()
	entity.Id = id
	if entity.DateOfJoining.IsZero() {
		entity.DateOfJoining = existing.DateOfJoining
	}

	replacePicture := false
	if picture != nil {
		url, uploadErr := svc.pictures.StorePicture(ctx, picture.FileName, picture.ContentType, picture.Size, picture.File)
		if uploadErr != nil {
			svc.logger.Error("Failed to store profile picture",
				zap.Int64("id", id),
				zap.Error(uploadErr))
			return Response{}, fmt.Errorf("error storing profile picture: %w", uploadErr)
		}
		entity.ProfilePictureUrl = &url
		replacePicture = true
	} else {
		entity.ProfilePictureUrl = existing.ProfilePictureUrl
	}

	affected, err := svc.repo.Update(ctx, &entity, replacePicture)
	if err != nil {
		svc.logger.Error("Failed to update employee",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, fmt.Errorf("error updating employee with id %d: %w", id, err)
	}
	if affected == 0 {
		return Response{}, common.NotFoundError{Message: "Employee not found"}
	}

	svc.logger.Info("Employee updated successfully", zap.Int64("id", id))

	entity.CreatedAt = existing.CreatedAt
	entity.UpdatedAt = time.Now()
	return entity.toResponse(), nil
}

func (svc *Service) DeleteById(ctx context.Context, id int64) error {
	svc.logger.Info("Deleting employee by ID", zap.Int64("id", id))

	affected, err := svc.repo.DeleteById(ctx, id)
	if err != nil {
		svc.logger.Error("Failed to delete employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("error deleting employee with id %d: %w", id, err)
	}
	if affected == 0 {
		svc.logger.Warn("Employee to delete not found", zap.Int64("id", id))
		return common.NotFoundError{Message: "Employee not found"}
	}

	svc.logger.Info("Employee deleted successfully", zap.Int64("id", id))
	return nil
}
