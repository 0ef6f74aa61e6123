package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type attendanceRepositoryImpl struct {
	attendance *mongo.Collection
	workers    *mongo.Collection
}

func NewAttendanceRepository(ctx context.Context, db *database.MongoDB) (attendance.AttendanceRepository, error) {
	coll := db.Collection(attendanceCollection)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "site_id", Value: 1}, {Key: "date", Value: 1}, {Key: "worker_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "date", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create attendance indexes: %w", err)
	}

	return &attendanceRepositoryImpl{
		attendance: coll,
		workers:    db.Collection(workersCollection),
	}, nil
}

func keyFilter(workerID, siteID, date string) bson.M {
	return bson.M{"worker_id": workerID, "site_id": siteID, "date": date}
}

// upsertUpdate sets the mutable fields and only writes the id on insert, so a
// concurrent writer that lost the race updates the winner's document.
func upsertUpdate(a attendance.Record) bson.M {
	return bson.M{
		"$set": bson.M{
			"status":       string(a.Status),
			"hours_worked": a.HoursWorked,
			"check_in":     a.CheckIn,
			"check_out":    a.CheckOut,
			"notes":        a.Notes,
			"updated_at":   a.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        a.ID,
			"created_at": a.CreatedAt,
		},
	}
}

// GetByKey implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByKey(ctx context.Context, workerID, siteID, date string) (*attendance.Record, error) {
	var doc attendanceDocument
	err := r.attendance.FindOne(ctx, keyFilter(workerID, siteID, date)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	record := doc.toDomain()
	return &record, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Record) (attendance.Record, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc attendanceDocument
	err := r.attendance.FindOneAndUpdate(ctx, keyFilter(a.WorkerID, a.SiteID, a.Date), upsertUpdate(a), opts).Decode(&doc)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("upsert attendance: %w", err)
	}
	return doc.toDomain(), nil
}

// BulkUpsert implements attendance.AttendanceRepository. The write is ordered
// and stops at the first failure.
func (r *attendanceRepositoryImpl) BulkUpsert(ctx context.Context, records []attendance.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, a := range records {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(keyFilter(a.WorkerID, a.SiteID, a.Date)).
			SetUpdate(upsertUpdate(a)).
			SetUpsert(true))
	}

	res, err := r.attendance.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("bulk upsert attendance: %w", err)
	}
	return int(res.MatchedCount + res.UpsertedCount), nil
}

// ListBySiteDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBySiteDate(ctx context.Context, siteID, date string) ([]attendance.Record, error) {
	return r.find(ctx, bson.M{"site_id": siteID, "date": date})
}

// ListBySiteRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBySiteRange(ctx context.Context, siteID string, rng period.Range) ([]attendance.Record, error) {
	return r.find(ctx, dateRange(bson.M{"site_id": siteID}, rng.From, rng.To))
}

// ListByWorkerRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByWorkerRange(ctx context.Context, workerID string, rng period.Range) ([]attendance.Record, error) {
	return r.find(ctx, dateRange(bson.M{"worker_id": workerID}, rng.From, rng.To))
}

// find loads matching records and attaches their workers. Records whose worker
// no longer exists keep a nil Worker.
func (r *attendanceRepositoryImpl) find(ctx context.Context, filter bson.M) ([]attendance.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.attendance.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}

	records := make([]attendance.Record, 0, len(docs))
	ids := make([]string, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		records = append(records, d.toDomain())
		if _, ok := seen[d.WorkerID]; !ok {
			seen[d.WorkerID] = struct{}{}
			ids = append(ids, d.WorkerID)
		}
	}
	if len(ids) == 0 {
		return records, nil
	}

	workers, err := findWorkers(ctx, r.workers, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*worker.Worker, len(workers))
	for i := range workers {
		byID[workers[i].ID] = &workers[i]
	}
	for i := range records {
		records[i].Worker = byID[records[i].WorkerID]
	}
	return records, nil
}
