package ports

import (
	"context"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// ReceiptRepository is the audit trail of sales submitted through the gateway.
type ReceiptRepository interface {
	Insert(ctx context.Context, r *domain.Receipt) error
	// ListBySeller returns the seller's receipts, newest first.
	ListBySeller(ctx context.Context, sellerID int64, limit int) ([]*domain.Receipt, error)
}

// ReceiptRecorder accepts receipts for asynchronous persistence. Enqueue
// never blocks the sale on the audit write.
type ReceiptRecorder interface {
	Enqueue(r *domain.Receipt)
}

type ReceiptService interface {
	Record(ctx context.Context, r *domain.Receipt) error
	List(ctx context.Context, s *domain.Session, limit int) ([]*domain.Receipt, error)
}
