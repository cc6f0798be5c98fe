// Package validation содержит функции валидации входных данных формы.
package validation

import "github.com/mmeshcher/reintegro-form/internal/model"

// MaxAttachmentSize ограничивает размер вложения (20 МБ).
const MaxAttachmentSize int64 = 20 * 1024 * 1024

// HasRequiredFields проверяет, что заполнены все обязательные поля и выбран файл.
// Комментарии не обязательны.
func HasRequiredFields(state model.FormState) bool {
	return state.FirstName != "" &&
		state.LastName != "" &&
		state.NationalID != "" &&
		state.ReimbursementType != "" &&
		state.Attachment != nil
}

// WithinSizeLimit проверяет, что размер вложения не превышает MaxAttachmentSize.
func WithinSizeLimit(size int64) bool {
	return size <= MaxAttachmentSize
}

// IsReimbursementType проверяет принадлежность значения закрытому набору типов.
func IsReimbursementType(value string) bool {
	for _, t := range model.ReimbursementTypes() {
		if string(t) == value {
			return true
		}
	}
	return false
}
