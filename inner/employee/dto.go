package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Entity struct {
	Id                int64           `db:"id"`
	FirstName         string          `db:"first_name"`
	LastName          string          `db:"last_name"`
	Email             string          `db:"email"`
	PhoneNumber       string          `db:"phone_number"`
	Department        string          `db:"department"`
	Position          string          `db:"position"`
	Salary            decimal.Decimal `db:"salary"`
	DateOfJoining     time.Time       `db:"date_of_joining"`
	ProfilePictureUrl *string         `db:"profile_picture_url"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (e *Entity) toResponse() Response {
	var picture string
	if e.ProfilePictureUrl != nil {
		picture = *e.ProfilePictureUrl
	}
	return Response{
		Id:             e.Id,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		PhoneNumber:    e.PhoneNumber,
		Department:     e.Department,
		Position:       e.Position,
		Salary:         e.Salary,
		DateOfJoining:  e.DateOfJoining,
		ProfilePicture: picture,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type Response struct {
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
} // @name Employee

// CreateRequest запрос на создание сотрудника.
// Salary парсится контроллером из формы отдельно: decimal не различает
// "не передано" и "0", а ноль - допустимая зарплата
type CreateRequest struct {
	FirstName     string          `json:"firstName" form:"firstName" validate:"required"`
	LastName      string          `json:"lastName" form:"lastName" validate:"required"`
	Email         string          `json:"email" form:"email" validate:"required,email"`
	PhoneNumber   string          `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	Department    string          `json:"department" form:"department" validate:"required,oneof=IT HR Finance Marketing Sales Operations Engineering 'Customer Service'"`
	Position      string          `json:"position" form:"position" validate:"required,oneof=Manager Developer Designer Analyst Coordinator Specialist Director Associate"`
	Salary        decimal.Decimal `json:"salary"`
	DateOfJoining time.Time       `json:"dateOfJoining"`
} // @name CreateEmployeeRequest

func (req *CreateRequest) ToEntity() Entity {
	return Entity{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Department:    req.Department,
		Position:      req.Position,
		Salary:        req.Salary,
		DateOfJoining: req.DateOfJoining,
	}
}

// SearchCriteria критерии поиска; пустая строка означает "фильтр не задан"
type SearchCriteria struct {
	Department string `json:"department"`
	Position   string `json:"position"`
} // @name SearchCriteria

func (c SearchCriteria) IsEmpty() bool {
	return c.Department == "" && c.Position == ""
}
