package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type workerRepositoryImpl struct {
	workers *mongo.Collection
}

func NewWorkerRepository(ctx context.Context, db *database.MongoDB) (worker.WorkerRepository, error) {
	workers := db.Collection(workersCollection)

	if _, err := workers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "worker_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "site_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create workers indexes: %w", err)
	}

	return &workerRepositoryImpl{workers: workers}, nil
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	doc, err := newWorkerDocument(w)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("encode worker: %w", err)
	}
	if _, err := r.workers.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return worker.Worker{}, worker.ErrWorkerCodeExists
		}
		return worker.Worker{}, fmt.Errorf("insert worker: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return r.findOne(ctx, bson.M{"_id": id}, worker.ErrWorkerNotFound)
}

// GetByIDAndSite implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByIDAndSite(ctx context.Context, id string, siteID string) (worker.Worker, error) {
	return r.findOne(ctx, bson.M{"_id": id, "site_id": siteID}, worker.ErrWorkerNotInSite)
}

func (r *workerRepositoryImpl) findOne(ctx context.Context, filter bson.M, notFound error) (worker.Worker, error) {
	var doc workerDocument
	err := r.workers.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return worker.Worker{}, notFound
	}
	if err != nil {
		return worker.Worker{}, fmt.Errorf("find worker: %w", err)
	}
	return doc.toDomain(), nil
}

// ListBySite implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]worker.Worker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findWorkers(ctx, r.workers, bson.M{"site_id": siteID}, opts)
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	rate, err := toDecimal128(w.WageRate)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("encode wage rate: %w", err)
	}

	res, err := r.workers.UpdateOne(ctx, bson.M{"_id": w.ID}, bson.M{"$set": bson.M{
		"name":       w.Name,
		"role":       w.Role,
		"wage_rate":  rate,
		"wage_type":  string(w.WageType),
		"phone":      w.Phone,
		"address":    w.Address,
		"updated_at": w.UpdatedAt,
	}})
	if err != nil {
		return worker.Worker{}, fmt.Errorf("update worker: %w", err)
	}
	if res.MatchedCount == 0 {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return r.GetByID(ctx, w.ID)
}

// Delete implements worker.WorkerRepository. Attendance and payments are kept.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.workers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if res.DeletedCount == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

func findWorkers(ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]worker.Worker, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find workers: %w", err)
	}

	var docs []workerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}

	workers := make([]worker.Worker, 0, len(docs))
	for _, d := range docs {
		workers = append(workers, d.toDomain())
	}
	return workers, nil
}
