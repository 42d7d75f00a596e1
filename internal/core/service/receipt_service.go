package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const maxReceiptList = 200

// ReceiptService persists and lists the gateway's audit receipts.
type ReceiptService struct {
	repo   ports.ReceiptRepository
	logger zerolog.Logger
}

func NewReceiptService(repo ports.ReceiptRepository, logger zerolog.Logger) *ReceiptService {
	return &ReceiptService{repo: repo, logger: logger}
}

// Record is the dispatcher's handler; audit failures never reach the seller.
func (s *ReceiptService) Record(ctx context.Context, r *domain.Receipt) error {
	if err := s.repo.Insert(ctx, r); err != nil {
		metrics.ReceiptsRecordedTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("receipt_id", r.ID).Int64("sale_id", r.SaleID).Msg("failed to record receipt")
		return err
	}
	metrics.ReceiptsRecordedTotal.WithLabelValues("success").Inc()
	s.logger.Debug().Str("receipt_id", r.ID).Int64("sale_id", r.SaleID).Msg("receipt recorded")
	return nil
}

// List returns the signed-in seller's receipts, newest first.
func (s *ReceiptService) List(ctx context.Context, sess *domain.Session, limit int) ([]*domain.Receipt, error) {
	if limit < 1 || limit > maxReceiptList {
		limit = maxReceiptList
	}
	out, err := s.repo.ListBySeller(ctx, sess.User.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return out, nil
}
