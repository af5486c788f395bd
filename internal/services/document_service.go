package services

import (
	"context"
	"log"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/blobstore"
	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/metrics"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/storage"
)

// DocumentServiceImpl реализует интерфейс DocumentService
type DocumentServiceImpl struct {
	repo    storage.PreconfirmRepository
	blobs   blobstore.BlobStore
	metrics *metrics.Metrics
}

func NewDocumentService(repo storage.PreconfirmRepository, blobs blobstore.BlobStore, m *metrics.Metrics) DocumentService {
	return &DocumentServiceImpl{
		repo:    repo,
		blobs:   blobs,
		metrics: m,
	}
}

// StoreDocument сохраняет документ. Содержимое файла не проверяется.
func (s *DocumentServiceImpl) StoreDocument(
	ctx context.Context,
	paymentID string,
	docType models.DocumentType,
	data []byte,
	originalName string,
) (*models.DocumentRecord, error) {
	if !docType.Valid() {
		return nil, apperrors.Validation("type must be one of invoice, contract, po, screenshot")
	}
	if err := ensureCheck(ctx, s.repo, paymentID); err != nil {
		return nil, err
	}

	path, err := s.blobs.Put(ctx, paymentID, originalName, data)
	if err != nil {
		return nil, err
	}

	doc := &models.DocumentRecord{
		PaymentID:    paymentID,
		Type:         docType,
		FilePath:     path,
		OriginalName: originalName,
		FileSize:     int64(len(data)),
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), path); delErr != nil {
			log.Printf("Failed to delete orphaned document %s: %v", path, delErr)
		}
		return nil, err
	}

	s.metrics.IncrementDocumentStored(string(docType))
	logger.LogEvent(logger.EventDocumentStored, serviceName, "blobstore", map[string]interface{}{
		"document_id": doc.ID,
		"payment_id":  paymentID,
		"type":        string(docType),
		"file_size":   doc.FileSize,
	})
	return doc, nil
}

func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error) {
	if err := ensureCheck(ctx, s.repo, paymentID); err != nil {
		return nil, err
	}
	return s.repo.ListDocuments(ctx, paymentID)
}
