package validator_test

import (
	"testing"

	"empdir/inner/auth"
	"empdir/inner/employee"
	innerValidator "empdir/inner/validator"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() employee.CreateRequest {
	return employee.CreateRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "555-0100",
		Department:  "Engineering",
		Position:    "Developer",
		Salary:      decimal.RequireFromString("95000"),
	}
}

func TestCreateRequest_Validation(t *testing.T) {
	validator_ := validator.New()

	t.Run("Valid request - all fields correct", func(t *testing.T) {
		err := validator_.Struct(validCreateRequest())
		assert.NoError(t, err)
	})

	t.Run("Invalid FirstName - empty", func(t *testing.T) {
		req := validCreateRequest()
		req.FirstName = ""

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "FirstName", validationErrors[0].Field())
		assert.Equal(t, "required", validationErrors[0].Tag())
	})

	t.Run("Invalid Email - malformed", func(t *testing.T) {
		req := validCreateRequest()
		req.Email = "not-an-email"

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Equal(t, "Email", validationErrors[0].Field())
		assert.Equal(t, "email", validationErrors[0].Tag())
	})

	t.Run("Invalid Department - not in the catalog", func(t *testing.T) {
		req := validCreateRequest()
		req.Department = "Magic"

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Equal(t, "Department", validationErrors[0].Field())
		assert.Equal(t, "oneof", validationErrors[0].Tag())
	})

	t.Run("Valid Department - value with a space", func(t *testing.T) {
		req := validCreateRequest()
		req.Department = "Customer Service"

		err := validator_.Struct(req)
		assert.NoError(t, err)
	})

	t.Run("Invalid Position - not in the catalog", func(t *testing.T) {
		req := validCreateRequest()
		req.Position = "Wizard"

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Equal(t, "Position", validationErrors[0].Field())
		assert.Equal(t, "oneof", validationErrors[0].Tag())
	})
}

func TestSignupRequest_Validation(t *testing.T) {
	validator_ := validator.New()

	t.Run("Valid request", func(t *testing.T) {
		req := auth.SignupRequest{
			Username: "ada",
			Email:    "ada@example.com",
			Password: "secret1",
		}
		assert.NoError(t, validator_.Struct(req))
	})

	t.Run("Username too short", func(t *testing.T) {
		req := auth.SignupRequest{
			Username: "ab",
			Email:    "ada@example.com",
			Password: "secret1",
		}

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Equal(t, "Username", validationErrors[0].Field())
		assert.Equal(t, "min", validationErrors[0].Tag())
	})

	t.Run("Password too short", func(t *testing.T) {
		req := auth.SignupRequest{
			Username: "ada",
			Email:    "ada@example.com",
			Password: "12345",
		}

		err := validator_.Struct(req)
		require.Error(t, err)

		validationErrors := err.(validator.ValidationErrors)
		assert.Equal(t, "Password", validationErrors[0].Field())
		assert.Equal(t, "min", validationErrors[0].Tag())
	})
}

func TestValidatorWrapper(t *testing.T) {
	wrapper := innerValidator.New()

	t.Run("Valid struct passes", func(t *testing.T) {
		assert.NoError(t, wrapper.Validate(validCreateRequest()))
	})

	t.Run("Errors are formatted with human readable messages", func(t *testing.T) {
		req := validCreateRequest()
		req.FirstName = ""
		req.Position = "Wizard"

		err := wrapper.Validate(req)
		require.Error(t, err)

		validationErrors, ok := err.(innerValidator.ValidationErrors)
		require.True(t, ok)
		require.Len(t, validationErrors.Errors, 2)

		assert.Equal(t, "Field 'FirstName' required", validationErrors.Errors[0].Message)
		assert.Equal(t,
			"Field 'Position' must be one of: Manager Developer Designer Analyst Coordinator Specialist Director Associate",
			validationErrors.Errors[1].Message)
	})
}
