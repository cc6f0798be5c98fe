// Package model содержит доменные сущности формы заявки на возмещение расходов.
package model

import "io"

// Имена полей формы, совпадающие с ключами полезной нагрузки.
const (
	FieldFirstName         = "nombre"
	FieldLastName          = "apellido"
	FieldNationalID        = "dni"
	FieldReimbursementType = "tipoReintegro"
	FieldComments          = "comentarios"
	FieldAttachment        = "adjunto"
)

// ChannelTag идентифицирует источник заявки для принимающей стороны.
const ChannelTag = "go-public-form"

// ReimbursementType описывает тип возмещения расходов.
type ReimbursementType string

const (
	ReimbursementMedications     ReimbursementType = "Medicamentos"
	ReimbursementStudies         ReimbursementType = "Estudios"
	ReimbursementHospitalization ReimbursementType = "Internación"
	ReimbursementConsultations   ReimbursementType = "Consultas"
	ReimbursementOther           ReimbursementType = "Otros"
)

// ReimbursementTypes возвращает закрытый набор допустимых типов в порядке отображения.
func ReimbursementTypes() []ReimbursementType {
	return []ReimbursementType{
		ReimbursementMedications,
		ReimbursementStudies,
		ReimbursementHospitalization,
		ReimbursementConsultations,
		ReimbursementOther,
	}
}

// File описывает выбранный пользователем файл вложения.
type File interface {
	Name() string
	Size() int64
	// Type возвращает заявленный MIME-тип или пустую строку.
	Type() string
	Open() (io.ReadCloser, error)
}

// FormState хранит текущее состояние полей формы.
type FormState struct {
	FirstName         string
	LastName          string
	NationalID        string
	ReimbursementType string
	Comments          string
	Attachment        File
}

// Status описывает результат последней попытки отправки.
type Status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// AttachmentPayload описывает вложение внутри полезной нагрузки.
type AttachmentPayload struct {
	Name      string `json:"nombre"`
	MediaType string `json:"tipo"`
	Size      int64  `json:"tamano"`
	Content   string `json:"contenido"`
}

// TimestampLayout задаёт формат submittedAt: UTC с миллисекундами, например 2026-01-02T03:04:05.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload представляет JSON-тело, отправляемое на внешний endpoint.
type Payload struct {
	FirstName         string            `json:"nombre"`
	LastName          string            `json:"apellido"`
	NationalID        string            `json:"dni"`
	ReimbursementType string            `json:"tipoReintegro"`
	Comments          string            `json:"comentarios"`
	Attachment        AttachmentPayload `json:"archivo"`
	SubmittedAt       string            `json:"submittedAt"`
	Channel           string            `json:"canal"`
}
