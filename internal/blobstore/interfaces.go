package blobstore

import "context"

// BlobStore хранит байты загруженных документов и возвращает непрозрачный путь
type BlobStore interface {
	// Put сохраняет данные документа платежа и возвращает путь хранения
	Put(ctx context.Context, paymentID, originalName string, data []byte) (string, error)

	// Delete удаляет ранее сохраненный объект (используется при откате записи метаданных)
	Delete(ctx context.Context, path string) error
}
