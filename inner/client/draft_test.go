package client

import (
	"strings"
	"testing"

	"empdir/inner/storage"

	"github.com/stretchr/testify/assert"
)

func validEmployeeDraft() EmployeeDraft {
	return EmployeeDraft{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "555-0100",
		Department:  "Engineering",
		Position:    "Developer",
		Salary:      "95000",
	}
}

func TestValidateEmployeeDraft(t *testing.T) {
	t.Run("Valid draft produces no errors", func(t *testing.T) {
		errors := ValidateEmployeeDraft(validEmployeeDraft())
		assert.Empty(t, errors)
	})

	t.Run("Empty draft reports every field", func(t *testing.T) {
		errors := ValidateEmployeeDraft(EmployeeDraft{})

		assert.Equal(t, "First name is required", errors["firstName"])
		assert.Equal(t, "Last name is required", errors["lastName"])
		assert.Equal(t, "Email is required", errors["email"])
		assert.Equal(t, "Phone number is required", errors["phoneNumber"])
		assert.Equal(t, "Department is required", errors["department"])
		assert.Equal(t, "Position is required", errors["position"])
		assert.Equal(t, "Salary is required", errors["salary"])
	})

	t.Run("Fields are validated independently", func(t *testing.T) {
		draft := validEmployeeDraft()
		draft.FirstName = "   "
		draft.Salary = "abc"

		errors := ValidateEmployeeDraft(draft)

		assert.Len(t, errors, 2)
		assert.Equal(t, "First name is required", errors["firstName"])
		assert.Equal(t, "Salary must be a positive number", errors["salary"])
	})

	t.Run("Malformed email", func(t *testing.T) {
		draft := validEmployeeDraft()
		draft.Email = "not-an-email"

		errors := ValidateEmployeeDraft(draft)

		assert.Equal(t, "Email is invalid", errors["email"])
	})

	t.Run("Email with dot in domain passes", func(t *testing.T) {
		draft := validEmployeeDraft()
		draft.Email = "ada@machines.example.co.uk"

		assert.Empty(t, ValidateEmployeeDraft(draft))
	})

	t.Run("Zero salary is valid, negative is not", func(t *testing.T) {
		draft := validEmployeeDraft()
		draft.Salary = "0"
		assert.Empty(t, ValidateEmployeeDraft(draft))

		draft.Salary = "-5"
		errors := ValidateEmployeeDraft(draft)
		assert.Equal(t, "Salary must be a positive number", errors["salary"])
	})
}

func TestValidateSignupDraft(t *testing.T) {
	t.Run("Valid draft produces no errors", func(t *testing.T) {
		errors := ValidateSignupDraft(SignupDraft{
			Username:        "ada",
			Email:           "ada@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		})
		assert.Empty(t, errors)
	})

	t.Run("Short username and password", func(t *testing.T) {
		errors := ValidateSignupDraft(SignupDraft{
			Username:        "ab",
			Email:           "ada@example.com",
			Password:        "12345",
			ConfirmPassword: "12345",
		})

		assert.Equal(t, "Username must be at least 3 characters", errors["username"])
		assert.Equal(t, "Password must be at least 6 characters", errors["password"])
	})

	t.Run("Password mismatch", func(t *testing.T) {
		errors := ValidateSignupDraft(SignupDraft{
			Username:        "ada",
			Email:           "ada@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret2",
		})

		assert.Equal(t, "Passwords do not match", errors["confirmPassword"])
	})
}

func TestAcceptUpload(t *testing.T) {
	t.Run("Exactly at the size limit is accepted", func(t *testing.T) {
		file := PictureFile{
			Name:        "ada.png",
			ContentType: "image/png",
			Data:        make([]byte, storage.MaxPictureSize),
		}
		assert.NoError(t, AcceptUpload(file))
	})

	t.Run("One byte over the limit is rejected", func(t *testing.T) {
		file := PictureFile{
			Name:        "ada.png",
			ContentType: "image/png",
			Data:        make([]byte, storage.MaxPictureSize+1),
		}

		err := AcceptUpload(file)

		assert.Error(t, err)
		clientErr, ok := err.(*Error)
		assert.True(t, ok)
		assert.Equal(t, KindLocalValidation, clientErr.Kind)
		assert.Equal(t, "File size must be less than 5MB", clientErr.Message)
	})

	t.Run("Non-image content type is rejected", func(t *testing.T) {
		file := PictureFile{
			Name:        "resume.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4"),
		}

		err := AcceptUpload(file)

		assert.Error(t, err)
		clientErr, ok := err.(*Error)
		assert.True(t, ok)
		assert.Equal(t, KindLocalValidation, clientErr.Kind)
		assert.Equal(t, "Only image files are allowed", clientErr.Message)
	})
}

func TestPreviewDataURI(t *testing.T) {
	file := PictureFile{
		Name:        "dot.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	}

	uri := PreviewDataURI(file)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,AQID", uri)
}
