package receiving

import (
	"context"
	"io"

	"github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/logger"
)

// Service turns an uploaded spreadsheet into persisted delivery records.
type Service interface {
	Import(ctx context.Context, file io.Reader, filename string) ([]models.ContractDelivery, error)
}

type service struct {
	deliveries deliveries.Service
	logg       *logger.Logger
}

// NewService wires the import pipeline over the delivery service.
func NewService(deliverySvc deliveries.Service, logg *logger.Logger) Service {
	return &service{deliveries: deliverySvc, logg: logg}
}

// Import parses the file, normalizes its rows, and submits them as one batch.
// An unreadable file creates nothing; a readable file lands whole or not at
// all through the batch path.
func (s *service) Import(ctx context.Context, file io.Reader, filename string) ([]models.ContractDelivery, error) {
	rows, err := ReadTable(file, filename)
	if err != nil {
		return nil, err
	}

	fields := Normalize(rows)
	created, err := s.deliveries.CreateBatch(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"filename": filename,
		"rows":     len(rows),
		"created":  len(created),
	}), "import completed")
	return created, nil
}
