package client

import (
	"encoding/base64"
	"regexp"
	"strings"

	"empdir/inner/storage"

	"github.com/shopspring/decimal"
)

// тот же нестрогий шаблон, что и у формы: непробельные символы,
// затем "@", затем "." где-то в доменной части
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidateEmployeeDraft вычисляет ошибки полей черновика сотрудника.
// Чистая функция: все поля проверяются при каждом вызове независимо друг
// от друга, пустой результат означает валидный черновик. Сброс прежней
// ошибки поля при его редактировании - забота экрана, не валидатора
func ValidateEmployeeDraft(draft EmployeeDraft) map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(draft.FirstName) == "" {
		errors["firstName"] = "First name is required"
	}
	if strings.TrimSpace(draft.LastName) == "" {
		errors["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(draft.Email) == "" {
		errors["email"] = "Email is required"
	} else if !emailPattern.MatchString(draft.Email) {
		errors["email"] = "Email is invalid"
	}
	if strings.TrimSpace(draft.PhoneNumber) == "" {
		errors["phoneNumber"] = "Phone number is required"
	}
	if draft.Department == "" {
		errors["department"] = "Department is required"
	}
	if draft.Position == "" {
		errors["position"] = "Position is required"
	}
	if draft.Salary == "" {
		errors["salary"] = "Salary is required"
	} else if salary, err := decimal.NewFromString(strings.TrimSpace(draft.Salary)); err != nil || salary.IsNegative() {
		// ноль допустим, отрицательное и нечисловое - нет
		errors["salary"] = "Salary must be a positive number"
	}

	return errors
}

// ValidateSignupDraft вычисляет ошибки полей черновика регистрации
func ValidateSignupDraft(draft SignupDraft) map[string]string {
	errors := map[string]string{}

	if draft.Username == "" {
		errors["username"] = "Username is required"
	} else if len(draft.Username) < 3 {
		errors["username"] = "Username must be at least 3 characters"
	}
	if draft.Email == "" {
		errors["email"] = "Email is required"
	} else if !emailPattern.MatchString(draft.Email) {
		errors["email"] = "Email is invalid"
	}
	if draft.Password == "" {
		errors["password"] = "Password is required"
	} else if len(draft.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}
	// сравнение безусловное: две пустые строки равны, поэтому ошибка
	// возникает только при настоящем расхождении
	if draft.Password != draft.ConfirmPassword {
		errors["confirmPassword"] = "Passwords do not match"
	}

	return errors
}

// AcceptUpload проверяет кандидата на загрузку по тем же правилам, что и
// сервер: не больше 5 МиБ и только image/*. Отклонённый файл не
// перевыбирается автоматически
func AcceptUpload(file PictureFile) error {
	if err := storage.AcceptUpload(int64(len(file.Data)), file.ContentType); err != nil {
		return &Error{Kind: KindLocalValidation, Message: err.Error()}
	}
	return nil
}

// PreviewDataURI строит data-URI для предпросмотра принятой картинки.
// Это удобство экрана, а не гарантия проверки
func PreviewDataURI(file PictureFile) string {
	return "data:" + file.ContentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}
