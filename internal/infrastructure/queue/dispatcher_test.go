package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

type recordingService struct {
	mu    sync.Mutex
	order map[int64][]int64
	total int
}

func (s *recordingService) Record(_ context.Context, r *domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		s.order = map[int64][]int64{}
	}
	s.order[r.SellerID] = append(s.order[r.SellerID], r.SaleID)
	s.total++
	return nil
}

func (s *recordingService) List(context.Context, *domain.Session, int) ([]*domain.Receipt, error) {
	return nil, nil
}

func TestDispatcher_PreservesPerSellerOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(3, svc, zerolog.Nop())
	d.Start(context.Background())

	for sale := int64(1); sale <= 50; sale++ {
		d.Enqueue(&domain.Receipt{ID: "r", SaleID: sale, SellerID: sale % 5})
	}
	d.Close()

	if svc.total != 50 {
		t.Fatalf("expected 50 receipts, got %d", svc.total)
	}
	for seller, sales := range svc.order {
		for i := 1; i < len(sales); i++ {
			if sales[i] <= sales[i-1] {
				t.Fatalf("seller %d receipts out of order: %v", seller, sales)
			}
		}
	}
}

func TestDispatcher_EnqueueAfterCloseDrops(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Enqueue(&domain.Receipt{ID: "late", SellerID: 1})
	if svc.total != 0 {
		t.Fatalf("closed dispatcher must not record")
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())
	for _, id := range []int64{0, 1, 7, 123456789} {
		first := d.shardIndex(id)
		if first < 0 || first >= 8 || d.shardIndex(id) != first {
			t.Fatalf("unstable shard for %d", id)
		}
	}
}
