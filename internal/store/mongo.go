package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"cargoproxy/internal/model"
)

// Mongo keeps each bucket in its own collection as {_id: key, value: entity}.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("verify mongo connection: %w", err)
	}
	if database == "" {
		database = "cargo"
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Ping(ctx context.Context) error { return m.client.Ping(ctx, readpref.Primary()) }

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Vehicles() Bucket[model.Vehicle] {
	return mongoBucket[model.Vehicle]{coll: m.db.Collection(BucketVehicles)}
}
func (m *Mongo) Customers() Bucket[model.Customer] {
	return mongoBucket[model.Customer]{coll: m.db.Collection(BucketCustomers)}
}
func (m *Mongo) Facilities() Bucket[model.Facility] {
	return mongoBucket[model.Facility]{coll: m.db.Collection(BucketFacilities)}
}
func (m *Mongo) Operators() Bucket[model.Operator] {
	return mongoBucket[model.Operator]{coll: m.db.Collection(BucketOperators)}
}
func (m *Mongo) Shipments() Bucket[model.Shipment] {
	return mongoBucket[model.Shipment]{coll: m.db.Collection(BucketShipments)}
}

type mongoDoc[T any] struct {
	ID    string `bson:"_id"`
	Value T      `bson:"value"`
}

type mongoBucket[T any] struct {
	coll *mongo.Collection
}

func (b mongoBucket[T]) Get(ctx context.Context, key string) (T, error) {
	var doc mongoDoc[T]
	err := b.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc.Value, ErrNotFound
	}
	if err != nil {
		return doc.Value, fmt.Errorf("find %s/%s: %w", b.coll.Name(), key, err)
	}
	return doc.Value, nil
}

func (b mongoBucket[T]) Put(ctx context.Context, key string, v T) error {
	_, err := b.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		mongoDoc[T]{ID: key, Value: v},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", b.coll.Name(), key, err)
	}
	return nil
}

func (b mongoBucket[T]) Clear(ctx context.Context) error {
	if _, err := b.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("delete %s: %w", b.coll.Name(), err)
	}
	return nil
}

func (b mongoBucket[T]) Keys(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := b.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.coll.Name(), err)
	}
	var ids []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &ids); err != nil {
		return nil, fmt.Errorf("list %s: %w", b.coll.Name(), err)
	}
	keys := make([]string, 0, len(ids))
	for _, d := range ids {
		keys = append(keys, d.ID)
	}
	return keys, nil
}
