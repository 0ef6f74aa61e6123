package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type siteRepositoryImpl struct {
	sites      *mongo.Collection
	workers    *mongo.Collection
	attendance *mongo.Collection
	payments   *mongo.Collection
}

func NewSiteRepository(ctx context.Context, db *database.MongoDB) (site.SiteRepository, error) {
	sites := db.Collection(sitesCollection)

	if _, err := sites.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "deleted", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create sites indexes: %w", err)
	}

	return &siteRepositoryImpl{
		sites:      sites,
		workers:    db.Collection(workersCollection),
		attendance: db.Collection(attendanceCollection),
		payments:   db.Collection(paymentsCollection),
	}, nil
}

// Create implements site.SiteRepository.
func (r *siteRepositoryImpl) Create(ctx context.Context, s site.Site) (site.Site, error) {
	s.Deleted = false
	if _, err := r.sites.InsertOne(ctx, newSiteDocument(s)); err != nil {
		return site.Site{}, fmt.Errorf("insert site: %w", err)
	}
	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepositoryImpl) GetByID(ctx context.Context, id string) (site.Site, error) {
	var doc siteDocument
	err := r.sites.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return site.Site{}, site.ErrSiteNotFound
	}
	if err != nil {
		return site.Site{}, fmt.Errorf("find site: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByOwner implements site.SiteRepository.
func (r *siteRepositoryImpl) ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]site.Site, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.sites.Find(ctx, bson.M{"created_by": ownerID, "deleted": deleted}, opts)
	if err != nil {
		return nil, fmt.Errorf("find sites: %w", err)
	}

	var docs []siteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sites: %w", err)
	}

	sites := make([]site.Site, 0, len(docs))
	for _, d := range docs {
		sites = append(sites, d.toDomain())
	}
	return sites, nil
}

// Update implements site.SiteRepository.
func (r *siteRepositoryImpl) Update(ctx context.Context, s site.Site) (site.Site, error) {
	res, err := r.sites.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{"$set": bson.M{
		"name":       s.Name,
		"location":   s.Location,
		"notes":      s.Notes,
		"updated_at": s.UpdatedAt,
	}})
	if err != nil {
		return site.Site{}, fmt.Errorf("update site: %w", err)
	}
	if res.MatchedCount == 0 {
		return site.Site{}, site.ErrSiteNotFound
	}
	return r.GetByID(ctx, s.ID)
}

// SetDeleted implements site.SiteRepository.
func (r *siteRepositoryImpl) SetDeleted(ctx context.Context, id string, deleted bool) error {
	res, err := r.sites.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted": deleted}})
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	if res.MatchedCount == 0 {
		return site.ErrSiteNotFound
	}
	return nil
}

// Delete implements site.SiteRepository. It removes the site's workers,
// attendance and payments along with it.
func (r *siteRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.sites.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if res.DeletedCount == 0 {
		return site.ErrSiteNotFound
	}

	for _, coll := range []*mongo.Collection{r.workers, r.attendance, r.payments} {
		if _, err := coll.DeleteMany(ctx, bson.M{"site_id": id}); err != nil {
			return fmt.Errorf("delete %s for site: %w", coll.Name(), err)
		}
	}
	return nil
}
