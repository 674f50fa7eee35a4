package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Employee запись каталога, как её отдаёт сервер
type Employee struct {
	Id             int64           `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	PhoneNumber    string          `json:"phoneNumber"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	Salary         decimal.Decimal `json:"salary"`
	DateOfJoining  time.Time       `json:"dateOfJoining"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EmployeeDraft черновик записи: сырые значения формы до валидации.
// Картинка опциональна; отсутствующая картинка не сериализуется вовсе
type EmployeeDraft struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Department     string
	Position       string
	Salary         string
	DateOfJoining  string
	ProfilePicture *PictureFile
}

// PictureFile кандидат на загрузку картинки профиля
type PictureFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SearchCriteria фильтры поиска; пустая строка означает "не задан"
type SearchCriteria struct {
	Department string
	Position   string
}

// List возвращает все записи в порядке, выбранном сервером
func (c *Client) List(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := c.do(ctx, http.MethodGet, "/employees", nil, nil, "",
		"Failed to fetch employees. Please try again.", &employees)
	return employees, err
}

// GetById возвращает одну запись по идентификатору
func (c *Client) GetById(ctx context.Context, id int64) (Employee, error) {
	var employee Employee
	err := c.do(ctx, http.MethodGet, "/employees/"+strconv.FormatInt(id, 10), nil, nil, "",
		"Failed to fetch employee details. Please try again.", &employee)
	return employee, err
}

// Create создаёт запись из черновика, уже прошедшего валидацию.
// Возвращает сохранённую запись с присвоенным идентификатором
func (c *Client) Create(ctx context.Context, draft EmployeeDraft) (Employee, error) {
	body, contentType, err := encodeEmployeeForm(draft)
	if err != nil {
		return Employee{}, err
	}

	var employee Employee
	err = c.do(ctx, http.MethodPost, "/employees", nil, body, contentType,
		"Failed to create employee. Please try again.", &employee)
	return employee, err
}

// Update полностью заменяет запись. Черновик без новой картинки оставляет
// существующую картинку на сервере нетронутой
func (c *Client) Update(ctx context.Context, id int64, draft EmployeeDraft) (Employee, error) {
	body, contentType, err := encodeEmployeeForm(draft)
	if err != nil {
		return Employee{}, err
	}

	var employee Employee
	err = c.do(ctx, http.MethodPut, "/employees/"+strconv.FormatInt(id, 10), nil, body, contentType,
		"Failed to update employee. Please try again.", &employee)
	return employee, err
}

// Delete удаляет запись по идентификатору
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+strconv.FormatInt(id, 10), nil, nil, "",
		"Failed to delete employee. Please try again.", nil)
}

// Search ищет по заданным фильтрам. Запрос без единого фильтра не уходит
// в сеть; незаданные фильтры не сериализуются в параметры запроса
// (пустая строка и отсутствующий параметр - одно и то же)
func (c *Client) Search(ctx context.Context, criteria SearchCriteria) ([]Employee, error) {
	if criteria.Department == "" && criteria.Position == "" {
		return nil, &Error{
			Kind:    KindLocalValidation,
			Message: "Please select at least one search criteria (department or position)",
		}
	}

	query := url.Values{}
	if criteria.Department != "" {
		query.Set("department", criteria.Department)
	}
	if criteria.Position != "" {
		query.Set("position", criteria.Position)
	}

	var employees []Employee
	err := c.do(ctx, http.MethodGet, "/employees/search", query, nil, "",
		"Failed to search employees. Please try again.", &employees)
	return employees, err
}

// RemoveById локальное удаление из списка после успешного Delete:
// удобство экрана списка, сходящееся с последующим полным перечитыванием
func RemoveById(employees []Employee, id int64) []Employee {
	result := make([]Employee, 0, len(employees))
	for _, employee := range employees {
		if employee.Id != id {
			result = append(result, employee)
		}
	}
	return result
}

// encodeEmployeeForm кодирует черновик в multipart-форму.
// Пишутся только заполненные поля: отсутствующее значение не превращается
// в пустую строку, а картинка добавляется файловой частью только когда выбрана
func encodeEmployeeForm(draft EmployeeDraft) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := []struct {
		name  string
		value string
	}{
		{"firstName", draft.FirstName},
		{"lastName", draft.LastName},
		{"email", draft.Email},
		{"phoneNumber", draft.PhoneNumber},
		{"department", draft.Department},
		{"position", draft.Position},
		{"salary", draft.Salary},
		{"dateOfJoining", draft.DateOfJoining},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", &Error{Kind: KindLocalValidation, Message: "Failed to encode form: " + err.Error()}
		}
	}

	if draft.ProfilePicture != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="profilePicture"; filename="`+draft.ProfilePicture.Name+`"`)
		header.Set("Content-Type", draft.ProfilePicture.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", &Error{Kind: KindLocalValidation, Message: "Failed to encode picture: " + err.Error()}
		}
		if _, err := part.Write(draft.ProfilePicture.Data); err != nil {
			return nil, "", &Error{Kind: KindLocalValidation, Message: "Failed to encode picture: " + err.Error()}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", &Error{Kind: KindLocalValidation, Message: "Failed to encode form: " + err.Error()}
	}
	return body, writer.FormDataContentType(), nil
}
