package db

import (
	"context"
	"fmt"

	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPaymentCollection implements PaymentCollection for MongoDB
type MongoPaymentCollection struct {
	Collection *mongo.Collection
}

func (c *MongoPaymentCollection) InsertPayment(ctx context.Context, payment *models.Payment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	ts := now()
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = ts
	payment.UpdatedAt = ts
	_, err := c.Collection.InsertOne(ctx, payment)
	return writeErr(err)
}

func (c *MongoPaymentCollection) FindPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var payment models.Payment
	if err := c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&payment); err != nil {
		return nil, findOneErr(err)
	}
	return &payment, nil
}

// FindPaymentDetails returns matching payments joined through their record
// to car and service, newest first.
func (c *MongoPaymentCollection) FindPaymentDetails(ctx context.Context, filter PaymentFilter) ([]models.PaymentDetail, error) {
	cur, err := c.Collection.Aggregate(ctx, paymentDetailPipeline(paymentMatch(filter)))
	if err != nil {
		return nil, err
	}
	details := make([]models.PaymentDetail, 0)
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *MongoPaymentCollection) FindPaymentDetailByID(ctx context.Context, id string) (*models.PaymentDetail, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	cur, err := c.Collection.Aggregate(ctx, paymentDetailPipeline(bson.M{"_id": oid}))
	if err != nil {
		return nil, err
	}
	details := make([]models.PaymentDetail, 0, 1)
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

func (c *MongoPaymentCollection) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	payment.UpdatedAt = now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": payment.ID}, payment)
	if err != nil {
		return writeErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoPaymentCollection) DeletePayment(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoPaymentCollection) DeletePaymentsByRecord(ctx context.Context, recordID primitive.ObjectID) (int64, error) {
	res, err := c.Collection.DeleteMany(ctx, bson.M{"service_record_id": recordID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func paymentMatch(filter PaymentFilter) bson.M {
	match := bson.M{}
	if filter.ServiceRecordID != nil {
		match["service_record_id"] = *filter.ServiceRecordID
	}
	rangeFilter(match, "created_at", filter.Created.From, filter.Created.To)
	return match
}
