package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes sale receipts to a fixed set of workers using consistent
// hashing on the seller id, so one seller's receipts are written in order.
type Dispatcher struct {
	workers []chan *domain.Receipt
	service ports.ReceiptService
	log     zerolog.Logger
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReceiptService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.Receipt, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Receipt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel until
// Close is called; ctx is handed to every write.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a receipt to the worker responsible for its seller. It never
// blocks: when the worker's buffer is full the receipt is dropped and logged.
func (d *Dispatcher) Enqueue(r *domain.Receipt) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()
	if d.closed {
		metrics.ReceiptsRecordedTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("receipt_id", r.ID).Msg("dispatcher closed, receipt dropped")
		return
	}

	idx := d.shardIndex(r.SellerID)
	select {
	case d.workers[idx] <- r:
		metrics.ReceiptQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ReceiptsRecordedTotal.WithLabelValues("dropped").Inc()
		d.log.Error().Str("receipt_id", r.ID).Int64("sale_id", r.SaleID).Int("worker_id", idx).Msg("receipt queue full, receipt dropped")
	}
}

// Close stops accepting receipts and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.closeMu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a seller id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sellerID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(sellerID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Receipt) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for r := range ch {
		metrics.ReceiptQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if err := d.service.Record(ctx, r); err != nil {
			d.log.Error().Err(err).
				Str("receipt_id", r.ID).
				Int("worker_id", id).
				Msg("receipt recording failed")
		}
	}
}
