// Package form реализует контроллер формы: валидацию, кодирование вложения и отправку заявки.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/reintegro-form/internal/attachment"
	"github.com/mmeshcher/reintegro-form/internal/model"
	"github.com/mmeshcher/reintegro-form/internal/validation"
	"github.com/mmeshcher/reintegro-form/internal/webhook"
)

// Sender определяет контракт отправки полезной нагрузки на endpoint.
type Sender interface {
	Send(ctx context.Context, payload model.Payload) error
}

// Options содержит параметры контроллера, влияющие на проверку конфигурации.
type Options struct {
	EndpointURL string
	// RequireEndpoint включает проверку адреса до отправки. Если выключено,
	// пустой адрес приводит к сетевой ошибке при запросе.
	RequireEndpoint bool
}

// Controller хранит состояние формы и выполняет отправку.
type Controller struct {
	opts   Options
	sender Sender
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	state     model.FormState
	status    *model.Status
	inFlight  int
	listeners []func(model.Status)
}

// NewController создаёт контроллер с пустым состоянием формы.
func NewController(opts Options, sender Sender, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		opts:   opts,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock подменяет источник времени для отметки submittedAt.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// OnStatus регистрирует обработчик, вызываемый при каждой установке статуса.
func (c *Controller) OnStatus(fn func(model.Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// UpdateField устанавливает текстовое поле формы. Возвращает false для неизвестного имени.
func (c *Controller) UpdateField(name, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case model.FieldFirstName:
		c.state.FirstName = value
	case model.FieldLastName:
		c.state.LastName = value
	case model.FieldNationalID:
		c.state.NationalID = value
	case model.FieldReimbursementType:
		c.state.ReimbursementType = value
	case model.FieldComments:
		c.state.Comments = value
	default:
		return false
	}
	return true
}

// UpdateFile сохраняет первый выбранный файл или очищает вложение, если файлов нет.
func (c *Controller) UpdateFile(files ...model.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(files) == 0 {
		c.state.Attachment = nil
		return
	}
	c.state.Attachment = files[0]
}

// State возвращает копию текущего состояния формы.
func (c *Controller) State() model.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status возвращает результат последней отправки или nil.
func (c *Controller) Status() *model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == nil {
		return nil
	}
	s := *c.status
	return &s
}

// Sending сообщает, выполняется ли сейчас отправка.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Submit выполняет полный цикл отправки. Результат доступен через Status,
// а классифицированная ошибка возвращается для вызывающего кода.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	c.status = nil
	c.inFlight++
	state := c.state
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	c.logger.Debug("submission started")

	if !validation.HasRequiredFields(state) {
		c.logger.Info("submission rejected", zap.String("reason", "missing fields"))
		c.setStatus(false, MsgRequiredFields)
		return fmt.Errorf("%w: %s", ErrValidation, MsgRequiredFields)
	}

	if !validation.WithinSizeLimit(state.Attachment.Size()) {
		c.logger.Info("submission rejected",
			zap.String("reason", "file too large"),
			zap.Int64("size", state.Attachment.Size()))
		c.setStatus(false, MsgFileTooLarge)
		return fmt.Errorf("%w: %s", ErrValidation, MsgFileTooLarge)
	}

	if c.opts.RequireEndpoint && strings.TrimSpace(c.opts.EndpointURL) == "" {
		c.logger.Error("submission rejected", zap.String("reason", "endpoint url not configured"))
		c.setStatus(false, MsgMissingConfig)
		return fmt.Errorf("%w: %s", ErrConfig, MsgMissingConfig)
	}

	payload, err := c.buildPayload(ctx, state)
	if err != nil {
		c.logger.Warn("attachment encoding failed", zap.Error(err))
		c.setStatus(false, MsgFailedPrefix+err.Error())
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := c.sender.Send(ctx, payload); err != nil {
		c.setStatus(false, MsgFailedPrefix+err.Error())

		var statusErr *webhook.StatusError
		if errors.As(err, &statusErr) {
			c.logger.Warn("endpoint rejected submission",
				zap.Int("status", statusErr.StatusCode),
				zap.String("details", statusErr.Details))
			return fmt.Errorf("%w: %w", ErrSubmission, err)
		}

		c.logger.Error("submission transport error", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	c.logger.Info("submission sent",
		zap.String("type", payload.ReimbursementType),
		zap.String("media_type", payload.Attachment.MediaType),
		zap.Int64("size", payload.Attachment.Size))

	c.mu.Lock()
	c.state = model.FormState{}
	c.mu.Unlock()
	c.setStatus(true, MsgSubmitted)

	return nil
}

func (c *Controller) buildPayload(ctx context.Context, state model.FormState) (model.Payload, error) {
	content, err := attachment.Encode(ctx, state.Attachment)
	if err != nil {
		return model.Payload{}, err
	}

	f := state.Attachment

	return model.Payload{
		FirstName:         strings.TrimSpace(state.FirstName),
		LastName:          strings.TrimSpace(state.LastName),
		NationalID:        strings.TrimSpace(state.NationalID),
		ReimbursementType: state.ReimbursementType,
		Comments:          strings.TrimSpace(state.Comments),
		Attachment: model.AttachmentPayload{
			Name:      f.Name(),
			MediaType: attachment.MediaType(f.Name(), f.Type()),
			Size:      f.Size(),
			Content:   content,
		},
		SubmittedAt: c.now().UTC().Format(model.TimestampLayout),
		Channel:     model.ChannelTag,
	}, nil
}

func (c *Controller) setStatus(ok bool, msg string) {
	s := model.Status{OK: ok, Message: msg}

	c.mu.Lock()
	c.status = &s
	listeners := append([]func(model.Status){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
