package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// schemaDocumentID is a key of the single document describing the history schema
const schemaDocumentID = "schema"

type schemaDocument struct {
	ID              string    `bson:"_id"`
	ToolVersion     string    `bson:"toolVersion"`
	DatabaseVersion uint      `bson:"databaseVersion"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

// GetMetaInfo returns schema description, empty one for a fresh database
func (d *Database) GetMetaInfo(ctx context.Context) (*model.MetaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	var doc schemaDocument
	err := d.meta.FindOne(ctx, bson.M{"_id": schemaDocumentID}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &model.MetaInfo{}, nil
	case err != nil:
		return nil, fmt.Errorf("load schema document failed: %w", err)
	}

	return doc.metaInfo(), nil
}

func (doc schemaDocument) metaInfo() *model.MetaInfo {
	return &model.MetaInfo{Version: doc.ToolVersion, DatabaseVersion: doc.DatabaseVersion}
}

func schemaUpdate(mi model.MetaInfo, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"toolVersion":     mi.Version,
		"databaseVersion": mi.DatabaseVersion,
		"updatedAt":       now.UTC(),
	}}
}

// SetMetaInfo stores schema description
func (d *Database) SetMetaInfo(ctx context.Context, mi model.MetaInfo) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	update := schemaUpdate(mi, time.Now())
	_, err := d.meta.UpdateByID(ctx, schemaDocumentID, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store schema document failed: %w", err)
	}
	return nil
}
