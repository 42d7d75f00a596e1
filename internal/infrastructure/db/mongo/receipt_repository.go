package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

const collectionReceipts = "sale_receipts"

type ReceiptRepository struct {
	col *mongo.Collection
}

func NewReceiptRepository(db *mongo.Database) *ReceiptRepository {
	return &ReceiptRepository{col: db.Collection(collectionReceipts)}
}

type receiptDocument struct {
	ID          string                `bson:"_id"`
	SaleID      int64                 `bson:"sale_id"`
	GameID      int64                 `bson:"game_id"`
	SellerID    int64                 `bson:"seller_id"`
	SellerEmail string                `bson:"seller_email"`
	Items       []receiptItemDocument `bson:"items"`
	Total       primitive.Decimal128  `bson:"total"`
	SubmittedAt time.Time             `bson:"submitted_at"`
}

type receiptItemDocument struct {
	ProductID int64                `bson:"product_id"`
	Name      string               `bson:"name"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unit_price"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toReceiptDocument(r *domain.Receipt) (*receiptDocument, error) {
	total, err := toDecimal128(r.Total)
	if err != nil {
		return nil, fmt.Errorf("receipt total: %w", err)
	}
	doc := &receiptDocument{
		ID:          r.ID,
		SaleID:      r.SaleID,
		GameID:      r.GameID,
		SellerID:    r.SellerID,
		SellerEmail: r.SellerEmail,
		Items:       make([]receiptItemDocument, 0, len(r.Items)),
		Total:       total,
		SubmittedAt: r.SubmittedAt.UTC(),
	}
	for _, it := range r.Items {
		price, err := toDecimal128(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("receipt item %d price: %w", it.ProductID, err)
		}
		doc.Items = append(doc.Items, receiptItemDocument{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	return doc, nil
}

func (d *receiptDocument) toDomain() (*domain.Receipt, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, fmt.Errorf("receipt %s total: %w", d.ID, err)
	}
	r := &domain.Receipt{
		ID:          d.ID,
		SaleID:      d.SaleID,
		GameID:      d.GameID,
		SellerID:    d.SellerID,
		SellerEmail: d.SellerEmail,
		Items:       make([]domain.ReceiptItem, 0, len(d.Items)),
		Total:       total,
		SubmittedAt: d.SubmittedAt,
	}
	for _, it := range d.Items {
		price, err := fromDecimal128(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("receipt %s item price: %w", d.ID, err)
		}
		r.Items = append(r.Items, domain.ReceiptItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	return r, nil
}

// Insert stores a receipt. Replaying the same receipt id is a no-op.
func (r *ReceiptRepository) Insert(ctx context.Context, rc *domain.Receipt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toReceiptDocument(rc)
	if err != nil {
		return err
	}

	_, err = r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// ListBySeller returns the seller's receipts, newest first.
func (r *ReceiptRepository) ListBySeller(ctx context.Context, sellerID int64, limit int) ([]*domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"seller_id": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []receiptDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.Receipt, 0, len(docs))
	for i := range docs {
		rc, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the receipts collection.
func (r *ReceiptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "sale_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
