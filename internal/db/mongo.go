package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CarsCollection           = "cars"
	ServicesCollection       = "services"
	ServiceRecordsCollection = "service_records"
	PartsUsedCollection      = "parts_used"
	PaymentsCollection       = "payments"
	UsersCollection          = "users"
)

var (
	// ErrNotFound is returned when no document matches an id or filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store hands out the collections of one database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewStore creates a store over the named database.
func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{Client: client, DB: client.Database(dbName)}
}

func (s *Store) Cars() *MongoCarCollection {
	return &MongoCarCollection{Collection: s.DB.Collection(CarsCollection)}
}

func (s *Store) Services() *MongoServiceCollection {
	return &MongoServiceCollection{Collection: s.DB.Collection(ServicesCollection)}
}

func (s *Store) ServiceRecords() *MongoServiceRecordCollection {
	return &MongoServiceRecordCollection{Collection: s.DB.Collection(ServiceRecordsCollection)}
}

func (s *Store) Parts() *MongoPartsCollection {
	return &MongoPartsCollection{Collection: s.DB.Collection(PartsUsedCollection)}
}

func (s *Store) Payments() *MongoPaymentCollection {
	return &MongoPaymentCollection{Collection: s.DB.Collection(PaymentsCollection)}
}

func (s *Store) Users() *MongoUserCollection {
	return &MongoUserCollection{Collection: s.DB.Collection(UsersCollection)}
}

// Transactor returns a transaction runner bound to the store's client.
func (s *Store) Transactor() *MongoTransactor {
	return &MongoTransactor{Client: s.Client}
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexes = []indexSpec{
	{CarsCollection, bson.D{{Key: "vin", Value: 1}}, true},
	{CarsCollection, bson.D{{Key: "license_plate", Value: 1}}, true},
	{CarsCollection, bson.D{{Key: "created_at", Value: -1}}, false},
	{ServicesCollection, bson.D{{Key: "name", Value: 1}}, true},
	{ServiceRecordsCollection, bson.D{{Key: "car_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
	{ServiceRecordsCollection, bson.D{{Key: "service_id", Value: 1}}, false},
	{ServiceRecordsCollection, bson.D{{Key: "created_at", Value: -1}}, false},
	{PartsUsedCollection, bson.D{{Key: "service_record_id", Value: 1}}, false},
	{PartsUsedCollection, bson.D{{Key: "name", Value: 1}}, false},
	{PaymentsCollection, bson.D{{Key: "service_record_id", Value: 1}}, false},
	{PaymentsCollection, bson.D{{Key: "created_at", Value: -1}}, false},
	{UsersCollection, bson.D{{Key: "username", Value: 1}}, true},
	{UsersCollection, bson.D{{Key: "email", Value: 1}}, true},
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, spec := range indexes {
		model := mongo.IndexModel{Keys: spec.keys}
		if spec.unique {
			model.Options = options.Index().SetUnique(true)
		}
		name, err := s.DB.Collection(spec.collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
		log.WithFields(log.Fields{"collection": spec.collection, "index": name}).Debug("Index ensured")
	}
	return nil
}

// ParseID converts a hex id into an ObjectID. Malformed ids cannot name a
// stored document and are reported as ErrNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return oid, nil
}

// now is the write timestamp, truncated to the precision Mongo stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func findOneErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func rangeFilter(filter bson.M, field string, from, to *time.Time) {
	if from == nil && to == nil {
		return
	}
	bounds := bson.M{}
	if from != nil {
		bounds["$gte"] = *from
	}
	if to != nil {
		bounds["$lte"] = *to
	}
	filter[field] = bounds
}
