package attachment

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// MemoryFile хранит содержимое вложения в памяти.
type MemoryFile struct {
	name      string
	mediaType string
	data      []byte
}

// NewMemoryFile создаёт вложение из среза байт.
func NewMemoryFile(name, mediaType string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, mediaType: mediaType, data: data}
}

func (f *MemoryFile) Name() string { return f.name }
func (f *MemoryFile) Size() int64  { return int64(len(f.data)) }
func (f *MemoryFile) Type() string { return f.mediaType }

// Open возвращает новый reader поверх содержимого.
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// MultipartFile адаптирует файл из multipart/form-data запроса.
type MultipartFile struct {
	header *multipart.FileHeader
}

// NewMultipartFile оборачивает заголовок файла multipart-формы.
func NewMultipartFile(h *multipart.FileHeader) *MultipartFile {
	return &MultipartFile{header: h}
}

func (f *MultipartFile) Name() string { return f.header.Filename }
func (f *MultipartFile) Size() int64  { return f.header.Size }

// Type возвращает Content-Type части, если клиент его передал.
func (f *MultipartFile) Type() string {
	ct := f.header.Header.Get("Content-Type")
	// браузеры присылают octet-stream, когда тип неизвестен
	if ct == "application/octet-stream" {
		return ""
	}
	return ct
}

func (f *MultipartFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

// LocalFile представляет файл на диске.
type LocalFile struct {
	path string
	size int64
}

// NewLocalFile проверяет, что путь указывает на обычный файл, и запоминает его размер.
func NewLocalFile(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return &LocalFile{path: path, size: info.Size()}, nil
}

func (f *LocalFile) Name() string { return filepath.Base(f.path) }
func (f *LocalFile) Size() int64  { return f.size }
func (f *LocalFile) Type() string { return "" }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
