package storage

import (
	"strings"

	"empdir/inner/common"
)

// MaxPictureSize предельный размер картинки профиля: ровно 5 МиБ ещё
// принимается, всё что больше - отклоняется
const MaxPictureSize = 5 * 1024 * 1024

const (
	ErrFileTooLarge    = "File size must be less than 5MB"
	ErrUnsupportedType = "Only image files are allowed"
)

// AcceptUpload проверяет кандидата на загрузку до того, как он будет
// прикреплён к записи. Отклонённый файл не перепроверяется: пользователь
// должен выбрать новый
func AcceptUpload(size int64, contentType string) error {
	if size > MaxPictureSize {
		return common.RequestValidationError{Message: ErrFileTooLarge}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return common.RequestValidationError{Message: ErrUnsupportedType}
	}
	return nil
}
