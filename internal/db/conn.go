package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Version is a current schema version of the history database
const Version uint = 1

const databaseName = "covers"

type Database struct {
	cli  *mongo.Client
	db   *mongo.Database
	runs *mongo.Collection
	meta *mongo.Collection
}

const databaseTimeout = 40 * time.Second

// Connect creates database connection
func Connect(uri string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), databaseTimeout)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	if err = cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	db := &Database{
		cli:  cli,
		db:   cli.Database(databaseName),
		runs: cli.Database(databaseName).Collection("runs"),
		meta: cli.Database(databaseName).Collection("meta"),
	}

	return db, nil
}

// Close disconnects from the database
func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), databaseTimeout)
	defer cancel()

	return d.cli.Disconnect(ctx)
}
