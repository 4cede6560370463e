// Package report persists per-collection validation summaries so a lab
// can track submission readiness across batch runs.
package report

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/NDAV/internal/validate"
)

// CollectionReport is the stored form of one collection's batch outcome.
type CollectionReport struct {
	CollectionID  string                 `bson:"collection_id"`
	AllValid      bool                   `bson:"all_valid"`
	TotalErrors   int                    `bson:"total_errors"`
	TotalWarnings int                    `bson:"total_warnings"`
	Results       map[string]interface{} `bson:"results"`
	ValidatedAt   time.Time              `bson:"validated_at"`
}

// Store receives one report per processed collection.
type Store interface {
	Save(ctx context.Context, report CollectionReport) error
}

// NewReport flattens a collection summary into its stored form.
func NewReport(summary *validate.CollectionSummary) CollectionReport {
	results := make(map[string]interface{}, len(summary.Results))
	for dt, res := range summary.Results {
		results[dt.String()] = bson.M{
			"is_valid": res.IsValid,
			"errors":   res.Errors,
			"warnings": res.Warnings,
			"metadata": res.Metadata,
		}
	}
	return CollectionReport{
		CollectionID:  summary.CollectionID,
		AllValid:      summary.AllValid,
		TotalErrors:   summary.TotalErrors,
		TotalWarnings: summary.TotalWarnings,
		Results:       results,
		ValidatedAt:   time.Now().UTC(),
	}
}

// MongoStore upserts reports keyed by collection ID, so re-running a
// batch refreshes the previous outcome instead of duplicating it.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{coll: client.Database(database).Collection("validation_reports")}
}

func (s *MongoStore) Save(ctx context.Context, report CollectionReport) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{"collection_id": report.CollectionID}
	update := bson.M{"$set": report}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// NoopStore is used when no report database is configured.
type NoopStore struct{}

func (NoopStore) Save(context.Context, CollectionReport) error { return nil }
