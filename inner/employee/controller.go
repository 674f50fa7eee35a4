package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"empdir/inner/common"
	"empdir/inner/storage"
	"empdir/inner/web"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Controller struct {
	server          *web.Server
	employeeService Svc
	logger          *common.Logger
}

// интерфейс сервиса employee.Service
type Svc interface {
	FindById(ctx context.Context, id int64) (Response, error)
	FindAll(ctx context.Context) ([]Response, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Response, error)
	Create(ctx context.Context, request CreateRequest, picture *PictureUpload) (Response, error)
	Update(ctx context.Context, id int64, request CreateRequest, picture *PictureUpload) (Response, error)
	DeleteById(ctx context.Context, id int64) error
}

func NewController(server *web.Server, employeeService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:          server,
		employeeService: employeeService,
		logger:          logger,
	}
}

// функция для регистрации маршрутов.
// Все операции с сотрудниками требуют аутентификации
func (c *Controller) RegisterRoutes() {
	api := c.server.GroupApiV1Protected
	// маршрут "/search" регистрируем раньше, чем "/:id"
	api.Get("/employees/search", c.SearchEmployees)
	api.Get("/employees", c.FindAllEmployees)
	api.Get("/employees/:id", c.GetEmployee)
	api.Post("/employees", c.CreateEmployee)
	api.Put("/employees/:id", c.UpdateEmployee)
	api.Delete("/employees/:id", c.DeleteEmployee)
}

// parseEmployeeForm собирает запрос из multipart-формы.
// Скалярные поля приходят текстом, картинка - опциональной файловой частью
func (c *Controller) parseEmployeeForm(ctx *fiber.Ctx) (CreateRequest, *PictureUpload, error) {
	request := CreateRequest{
		FirstName:   strings.TrimSpace(ctx.FormValue("firstName")),
		LastName:    strings.TrimSpace(ctx.FormValue("lastName")),
		Email:       strings.TrimSpace(ctx.FormValue("email")),
		PhoneNumber: strings.TrimSpace(ctx.FormValue("phoneNumber")),
		Department:  ctx.FormValue("department"),
		Position:    ctx.FormValue("position"),
	}

	salaryValue := strings.TrimSpace(ctx.FormValue("salary"))
	if salaryValue == "" {
		return request, nil, common.RequestValidationError{
			Message: "Field 'Salary' required",
			Fields:  []common.FieldError{{Field: "salary", Message: "Field 'Salary' required"}},
		}
	}
	salary, err := decimal.NewFromString(salaryValue)
	if err != nil {
		return request, nil, common.RequestValidationError{
			Message: "Salary must be a positive number",
			Fields:  []common.FieldError{{Field: "salary", Message: "Salary must be a positive number"}},
		}
	}
	request.Salary = salary

	if dateValue := ctx.FormValue("dateOfJoining"); dateValue != "" {
		dateOfJoining, err := time.Parse("2006-01-02", dateValue)
		if err != nil {
			return request, nil, common.RequestValidationError{
				Message: "Invalid date format for 'dateOfJoining', expected YYYY-MM-DD",
				Fields:  []common.FieldError{{Field: "dateOfJoining", Message: "Invalid date format, expected YYYY-MM-DD"}},
			}
		}
		request.DateOfJoining = dateOfJoining
	}

	// отсутствие файловой части - это валидный запрос без картинки
	fileHeader, err := ctx.FormFile("profilePicture")
	if err != nil {
		return request, nil, nil
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := storage.AcceptUpload(fileHeader.Size, contentType); err != nil {
		return request, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return request, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	return request, &PictureUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		File:        file,
	}, nil
}

// функция-хендлер, которая будет вызываться при POST запросе по маршруту "/api/v1/employees"
func (c *Controller) CreateEmployee(ctx *fiber.Ctx) error {
	request, picture, err := c.parseEmployeeForm(ctx)
	if err != nil {
		c.logger.WarnCtx(ctx, "create employee: invalid form",
			zap.Error(err),
			zap.String("ip", ctx.IP()))
		return c.errorResponse(ctx, err)
	}
	if picture != nil {
		defer func() {
			if closer, ok := picture.File.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
		}()
	}

	created, err := c.employeeService.Create(ctx.UserContext(), request, picture)
	if err != nil {
		c.logger.ErrorCtx(ctx, "create employee failed",
			zap.String("email", request.Email),
			zap.Error(err))
		return c.errorResponse(ctx, err)
	}

	c.logger.InfoCtx(ctx, "Employee created",
		zap.Int64("id", created.Id),
		zap.String("ip", ctx.IP()))
	return common.CreatedResponse(ctx, created)
}

func (c *Controller) GetEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}

	employee, err := c.employeeService.FindById(ctx.UserContext(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	return common.OkResponse(ctx, employee)
}

func (c *Controller) FindAllEmployees(ctx *fiber.Ctx) error {
	employees, err := c.employeeService.FindAll(ctx.UserContext())
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.OkResponse(ctx, employees)
}

// функция-хендлер поиска по query-параметрам department и position.
// Отсутствующий параметр и пустая строка означают одно и то же: фильтр не задан
func (c *Controller) SearchEmployees(ctx *fiber.Ctx) error {
	criteria := SearchCriteria{
		Department: ctx.Query("department"),
		Position:   ctx.Query("position"),
	}

	employees, err := c.employeeService.Search(ctx.UserContext(), criteria)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return common.OkResponse(ctx, employees)
}

func (c *Controller) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}

	request, picture, err := c.parseEmployeeForm(ctx)
	if err != nil {
		c.logger.WarnCtx(ctx, "update employee: invalid form",
			zap.Int64("id", id),
			zap.Error(err))
		return c.errorResponse(ctx, err)
	}
	if picture != nil {
		defer func() {
			if closer, ok := picture.File.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
		}()
	}

	updated, err := c.employeeService.Update(ctx.UserContext(), id, request, picture)
	if err != nil {
		c.logger.ErrorCtx(ctx, "update employee failed",
			zap.Int64("id", id),
			zap.Error(err))
		return c.errorResponse(ctx, err)
	}

	return common.OkResponse(ctx, updated)
}

func (c *Controller) DeleteEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, "Invalid employee ID")
	}

	err = c.employeeService.DeleteById(ctx.UserContext(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}

	return common.OkResponse(ctx, "Employee deleted successfully")
}

// единая трансляция ошибок сервиса в HTTP-статусы
func (c *Controller) errorResponse(ctx *fiber.Ctx, err error) error {
	var validationErr common.RequestValidationError
	switch {
	case errors.As(err, &validationErr):
		return common.ValidationErrResponse(ctx, validationErr.Message, validationErr.Fields)
	case errors.As(err, &common.AlreadyExistsError{}):
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &common.NotFoundError{}):
		return common.ErrResponse(ctx, fiber.StatusNotFound, err.Error())
	default:
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
