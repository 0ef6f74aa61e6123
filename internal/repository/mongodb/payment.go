package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type paymentRepositoryImpl struct {
	payments *mongo.Collection
	workers  *mongo.Collection
}

func NewPaymentRepository(ctx context.Context, db *database.MongoDB) (payment.PaymentRepository, error) {
	coll := db.Collection(paymentsCollection)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "date", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create payments indexes: %w", err)
	}

	return &paymentRepositoryImpl{
		payments: coll,
		workers:  db.Collection(workersCollection),
	}, nil
}

// Create implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	doc, err := newPaymentDocument(p)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("encode payment: %w", err)
	}
	if _, err := r.payments.InsertOne(ctx, doc); err != nil {
		return payment.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	var doc paymentDocument
	err := r.payments.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	if err != nil {
		return payment.Payment{}, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByWorker implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]payment.Payment, error) {
	return r.find(ctx, dateRange(bson.M{"worker_id": workerID}, rng.From, rng.To))
}

// ListBySite implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) ListBySite(ctx context.Context, siteID string, filter payment.SiteFilter) ([]payment.Payment, error) {
	query := bson.M{"site_id": siteID}
	if filter.WorkerID != nil {
		query["worker_id"] = *filter.WorkerID
	}
	return r.find(ctx, dateRange(query, filter.Range.From, filter.Range.To))
}

func (r *paymentRepositoryImpl) find(ctx context.Context, filter bson.M) ([]payment.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := r.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	var docs []paymentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	payments := make([]payment.Payment, 0, len(docs))
	ids := make([]string, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		payments = append(payments, d.toDomain())
		if _, ok := seen[d.WorkerID]; !ok {
			seen[d.WorkerID] = struct{}{}
			ids = append(ids, d.WorkerID)
		}
	}
	if len(ids) == 0 {
		return payments, nil
	}

	workers, err := findWorkers(ctx, r.workers, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(workers))
	for i, w := range workers {
		byID[w.ID] = i
	}
	for i := range payments {
		if j, ok := byID[payments[i].WorkerID]; ok {
			payments[i].WorkerName = &workers[j].Name
			payments[i].WorkerRole = &workers[j].Role
		}
	}
	return payments, nil
}

// Update implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Update(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("encode amount: %w", err)
	}

	res, err := r.payments.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"amount":       amount,
		"date":         p.Date,
		"payment_type": string(p.PaymentType),
		"notes":        p.Notes,
		"updated_at":   p.UpdatedAt,
	}})
	if err != nil {
		return payment.Payment{}, fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return r.GetByID(ctx, p.ID)
}

// Delete implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.payments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}
