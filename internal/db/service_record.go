package db

import (
	"context"
	"fmt"

	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceRecordCollection implements ServiceRecordCollection for MongoDB
type MongoServiceRecordCollection struct {
	Collection *mongo.Collection
}

func (c *MongoServiceRecordCollection) InsertServiceRecord(ctx context.Context, record *models.ServiceRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	ts := now()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = ts
	record.UpdatedAt = ts
	_, err := c.Collection.InsertOne(ctx, record)
	return writeErr(err)
}

func (c *MongoServiceRecordCollection) FindServiceRecordByID(ctx context.Context, id string) (*models.ServiceRecord, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var record models.ServiceRecord
	if err := c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record); err != nil {
		return nil, findOneErr(err)
	}
	return &record, nil
}

// FindServiceRecordDetails returns matching records joined to car, service
// and parts, newest first.
func (c *MongoServiceRecordCollection) FindServiceRecordDetails(ctx context.Context, filter RecordFilter) ([]models.ServiceRecordDetail, error) {
	cur, err := c.Collection.Aggregate(ctx, recordDetailPipeline(recordMatch(filter), filter.WithPayments, filter.Limit))
	if err != nil {
		return nil, err
	}
	details := make([]models.ServiceRecordDetail, 0)
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *MongoServiceRecordCollection) FindServiceRecordDetailByID(ctx context.Context, id string) (*models.ServiceRecordDetail, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	cur, err := c.Collection.Aggregate(ctx, recordDetailPipeline(bson.M{"_id": oid}, false, 1))
	if err != nil {
		return nil, err
	}
	details := make([]models.ServiceRecordDetail, 0, 1)
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

func (c *MongoServiceRecordCollection) CountServiceRecords(ctx context.Context, filter RecordFilter) (int64, error) {
	return c.Collection.CountDocuments(ctx, recordMatch(filter))
}

func (c *MongoServiceRecordCollection) UpdateServiceRecord(ctx context.Context, record *models.ServiceRecord) error {
	record.UpdatedAt = now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return writeErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoServiceRecordCollection) DeleteServiceRecord(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func recordMatch(filter RecordFilter) bson.M {
	match := bson.M{}
	if filter.CarID != nil {
		match["car_id"] = *filter.CarID
	}
	if filter.ServiceID != nil {
		match["service_id"] = *filter.ServiceID
	}
	rangeFilter(match, "created_at", filter.Created.From, filter.Created.To)
	return match
}

// MongoPartsCollection implements PartsCollection for MongoDB
type MongoPartsCollection struct {
	Collection *mongo.Collection
}

// InsertParts stores the line items of one record. An empty slice is a no-op.
func (c *MongoPartsCollection) InsertParts(ctx context.Context, recordID primitive.ObjectID, parts []models.PartsUsed) error {
	if len(parts) == 0 {
		return nil
	}
	ts := now()
	docs := make([]interface{}, len(parts))
	for i := range parts {
		parts[i].ID = primitive.NewObjectID()
		parts[i].ServiceRecordID = recordID
		parts[i].CreatedAt = ts
		docs[i] = parts[i]
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return writeErr(err)
}

func (c *MongoPartsCollection) DeletePartsByRecord(ctx context.Context, recordID primitive.ObjectID) (int64, error) {
	res, err := c.Collection.DeleteMany(ctx, bson.M{"service_record_id": recordID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AggregateInventory groups every part line by name, ordered by name.
func (c *MongoPartsCollection) AggregateInventory(ctx context.Context) ([]models.PartInventory, error) {
	cur, err := c.Collection.Aggregate(ctx, inventoryPipeline())
	if err != nil {
		return nil, err
	}
	rows := make([]models.PartInventory, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
