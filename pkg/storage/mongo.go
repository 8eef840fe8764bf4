package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoCollection is used when MongoOptions.Collection is empty.
const DefaultMongoCollection = "documents"

// Mongo stores one document per key: {_id: key, data: bytes, updated_at: time}.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	retry  RetryPolicy
}

// MongoOptions configures [NewMongo].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

type mongoDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongo connects to MongoDB and pings the primary.
func NewMongo(ctx context.Context, opts MongoOptions) (*Mongo, error) {
	if opts.Database == "" {
		opts.Database = "orgdot"
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		retry:  DefaultRetry,
	}, nil
}

func (m *Mongo) Save(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	doc := mongoDoc{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	return m.retry.Do(ctx, func() error {
		_, err := m.coll.UpdateOne(ctx,
			bson.M{"_id": key},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true))
		return mongoErr(err)
	})
}

func (m *Mongo) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var doc mongoDoc
	err := m.retry.Do(ctx, func() error {
		err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("load %s: %w", key, ErrNotFound)
		}
		return mongoErr(err)
	})
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return m.retry.Do(ctx, func() error {
		_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
		return mongoErr(err)
	})
}

func (m *Mongo) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	var n int64
	err := m.retry.Do(ctx, func() error {
		c, err := m.coll.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
		n = c
		return mongoErr(err)
	})
	return n > 0, err
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func mongoErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return Retryable(fmt.Errorf("mongo: %w", err))
	}
	return fmt.Errorf("mongo: %w", err)
}

var _ Store = (*Mongo)(nil)
