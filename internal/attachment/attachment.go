// Package attachment отвечает за определение MIME-типа и кодирование вложения в base64.
package attachment

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/mmeshcher/reintegro-form/internal/model"
)

const defaultMediaType = "application/octet-stream"

// AcceptedExtensions перечисляет расширения, которые можно выбрать в форме.
var AcceptedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

var mediaTypes = []struct {
	ext       string
	mediaType string
}{
	{".pdf", "application/pdf"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".png", "image/png"},
	{".doc", "application/msword"},
	{".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

// MediaType возвращает заявленный тип, а если он пуст, определяет тип по расширению имени файла.
func MediaType(name, declared string) string {
	if declared != "" {
		return declared
	}

	lower := strings.ToLower(name)
	for _, m := range mediaTypes {
		if strings.HasSuffix(lower, m.ext) {
			return m.mediaType
		}
	}

	return defaultMediaType
}

// Accepted сообщает, допускается ли файл с таким именем к выбору.
func Accepted(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AcceptedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Encode читает содержимое файла целиком и возвращает его в стандартной кодировке base64.
func Encode(ctx context.Context, f model.File) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no file selected")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, rc); err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode %s: %w", f.Name(), err)
	}

	return sb.String(), nil
}
