package form

import "errors"

var (
	// ErrValidation возвращается, если поля формы не заполнены или файл слишком большой.
	ErrValidation = errors.New("validation error")
	// ErrConfig возвращается, если не настроен адрес endpoint.
	ErrConfig = errors.New("config error")
	// ErrEncode возвращается при ошибке чтения вложения.
	ErrEncode = errors.New("encode error")
	// ErrSubmission возвращается, если endpoint отклонил заявку.
	ErrSubmission = errors.New("submission error")
	// ErrNetwork возвращается при сбое транспорта.
	ErrNetwork = errors.New("network error")
)

// Сообщения, которые видит пользователь.
const (
	MsgRequiredFields = "complete all fields and attach the file"
	MsgFileTooLarge   = "file exceeds 20 MB"
	MsgMissingConfig  = "missing endpoint configuration"
	MsgSubmitted      = "submitted successfully"
	MsgFailedPrefix   = "submission failed: "
)
