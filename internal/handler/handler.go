// Package handler содержит HTTP-обработчики формы возмещения расходов.
package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/reintegro-form/internal/attachment"
	"github.com/mmeshcher/reintegro-form/internal/form"
	"github.com/mmeshcher/reintegro-form/internal/model"
	"github.com/mmeshcher/reintegro-form/internal/validation"
)

//go:embed templates/form.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

// SubmitPath — адрес API для отправки заявки.
const SubmitPath = "/api/reintegros"

const (
	// multipart-конверт поверх максимального размера файла
	envelopeSize     = 1 << 20
	maxMultipartMem  = 8 << 20
	msgUnsupported   = "unsupported file type"
	msgInvalidType   = "unknown reimbursement type"
	msgMalformedForm = "malformed form"
)

// Submitter определяет контракт контроллера формы, используемого обработчиком.
type Submitter interface {
	UpdateField(name, value string) bool
	UpdateFile(files ...model.File)
	Submit(ctx context.Context) error
	Status() *model.Status
}

// Handler реализует HTTP-обработчики формы.
type Handler struct {
	newSubmitter func() Submitter
	logger       *zap.Logger
}

// NewHandler создаёт обработчик. newSubmitter вызывается для каждого запроса на отправку.
func NewHandler(newSubmitter func() Submitter, logger *zap.Logger) *Handler {
	return &Handler{
		newSubmitter: newSubmitter,
		logger:       logger,
	}
}

type formPage struct {
	Action    string
	Options   []model.ReimbursementType
	Accept    string
	MaxSizeMB int64
}

// Index отдаёт HTML-страницу формы.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Action:    SubmitPath,
		Options:   model.ReimbursementTypes(),
		Accept:    strings.Join(attachment.AcceptedExtensions, ","),
		MaxSizeMB: validation.MaxAttachmentSize >> 20,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, page); err != nil {
		h.logger.Error("render form error", zap.Error(err))
	}
}

// Health отвечает на проверку живости.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Submit принимает multipart-форму, передаёт поля контроллеру и возвращает статус отправки.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxAttachmentSize+envelopeSize)

	if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeStatus(w, http.StatusRequestEntityTooLarge, model.Status{Message: form.MsgFileTooLarge})
			return
		}
		writeStatus(w, http.StatusBadRequest, model.Status{Message: msgMalformedForm})
		return
	}
	defer r.MultipartForm.RemoveAll()

	tipo := r.FormValue(model.FieldReimbursementType)
	if tipo != "" && !validation.IsReimbursementType(tipo) {
		writeStatus(w, http.StatusUnprocessableEntity, model.Status{Message: msgInvalidType})
		return
	}

	s := h.newSubmitter()
	for _, name := range []string{
		model.FieldFirstName,
		model.FieldLastName,
		model.FieldNationalID,
		model.FieldReimbursementType,
		model.FieldComments,
	} {
		s.UpdateField(name, r.FormValue(name))
	}

	var files []model.File
	for _, fh := range r.MultipartForm.File[model.FieldAttachment] {
		if fh.Filename == "" {
			continue
		}
		if !attachment.Accepted(fh.Filename) {
			writeStatus(w, http.StatusUnsupportedMediaType, model.Status{Message: msgUnsupported})
			return
		}
		files = append(files, attachment.NewMultipartFile(fh))
	}
	s.UpdateFile(files...)

	err := s.Submit(r.Context())

	status := model.Status{OK: err == nil, Message: form.MsgSubmitted}
	if st := s.Status(); st != nil {
		status = *st
	}

	writeStatus(w, statusCode(err), status)
}

func statusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, form.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrEncode):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrConfig):
		return http.StatusInternalServerError
	case errors.Is(err, form.ErrSubmission), errors.Is(err, form.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeStatus(w http.ResponseWriter, code int, status model.Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
