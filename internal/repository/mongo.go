package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type blobDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBlobStore хранит блобы в коллекции blobs, _id = ключ
type MongoBlobStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var (
	_ BlobStore = (*MongoBlobStore)(nil)
	_ Closer    = (*MongoBlobStore)(nil)
)

func OpenMongo(ctx context.Context, uri, database string) (*MongoBlobStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoBlobStore{client: client, coll: client.Database(database).Collection("blobs")}, nil
}

func (m *MongoBlobStore) Get(ctx context.Context, key string) (string, error) {
	var doc blobDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find blob %q: %w", key, err)
	}
	return doc.Value, nil
}

func (m *MongoBlobStore) Set(ctx context.Context, key, value string) error {
	doc := blobDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace blob %q: %w", key, err)
	}
	return nil
}

func (m *MongoBlobStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
