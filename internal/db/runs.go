package db

import (
	"context"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveRun stores summary of the verification run
func (d *Database) SaveRun(ctx context.Context, run *model.Run) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	_, err := d.runs.InsertOne(ctx, run)
	return err
}

// RecentRuns returns last runs, newest first
func (d *Database) RecentRuns(ctx context.Context, limit int64) ([]*model.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startedat", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := d.runs.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var results []*model.Run
	if err = cur.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// RemoveRunsBefore removes runs started before the time
func (d *Database) RemoveRunsBefore(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	filter := bson.D{{Key: "startedat", Value: bson.D{{Key: "$lt", Value: before}}}}
	result, err := d.runs.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CreateIndexes creates indexes used by history queries
func (d *Database) CreateIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	_, err := d.runs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "startedat", Value: -1}}},
		{Keys: bson.D{{Key: "passed", Value: 1}, {Key: "startedat", Value: -1}}},
	})
	return err
}
