package blobstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"payment-preconfirm/internal/apperrors"
)

// PathPrefix префикс путей, возвращаемых FileStore
const PathPrefix = "payment-documents"

// FileStore хранит документы в локальной директории: <root>/<paymentId>/<uuid><ext>
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Put сохраняет файл и возвращает путь вида payment-documents/<paymentId>/<uuid><ext>
func (s *FileStore) Put(ctx context.Context, paymentID, originalName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !safeSegment(paymentID) {
		return "", apperrors.Validation("payment id %q cannot be used as a storage path", paymentID)
	}

	dir := filepath.Join(s.root, paymentID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create payment directory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	return path.Join(PathPrefix, paymentID, name), nil
}

// Delete удаляет файл по пути, ранее возвращенному Put
func (s *FileStore) Delete(ctx context.Context, storedPath string) error {
	local, err := s.Resolve(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Resolve переводит путь хранения в путь локальной файловой системы
func (s *FileStore) Resolve(storedPath string) (string, error) {
	parts := strings.Split(storedPath, "/")
	if len(parts) != 3 || parts[0] != PathPrefix || !safeSegment(parts[1]) || !safeSegment(parts[2]) {
		return "", fmt.Errorf("invalid document path %q", storedPath)
	}
	return filepath.Join(s.root, parts[1], parts[2]), nil
}

func safeSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`) && !strings.ContainsRune(segment, 0)
}
