package db

import (
	"context"
	"fmt"

	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCarCollection implements CarCollection for MongoDB
type MongoCarCollection struct {
	Collection *mongo.Collection
}

// InsertCar assigns an id and timestamps and stores the car.
func (c *MongoCarCollection) InsertCar(ctx context.Context, car *models.Car) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	ts := now()
	car.ID = primitive.NewObjectID()
	car.CreatedAt = ts
	car.UpdatedAt = ts
	_, err := c.Collection.InsertOne(ctx, car)
	return writeErr(err)
}

// FindCars returns every car, newest first.
func (c *MongoCarCollection) FindCars(ctx context.Context) ([]models.Car, error) {
	cur, err := c.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	cars := make([]models.Car, 0)
	if err := cur.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (c *MongoCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var car models.Car
	if err := c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&car); err != nil {
		return nil, findOneErr(err)
	}
	return &car, nil
}

// FindCarByVINOrPlate returns a car other than excludeID holding either
// identifier, or ErrNotFound.
func (c *MongoCarCollection) FindCarByVINOrPlate(ctx context.Context, vin, licensePlate string, excludeID primitive.ObjectID) (*models.Car, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"vin": vin},
		bson.M{"license_plate": licensePlate},
	}}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	var car models.Car
	if err := c.Collection.FindOne(ctx, filter).Decode(&car); err != nil {
		return nil, findOneErr(err)
	}
	return &car, nil
}

// UpdateCar replaces the stored car and refreshes UpdatedAt.
func (c *MongoCarCollection) UpdateCar(ctx context.Context, car *models.Car) error {
	car.UpdatedAt = now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": car.ID}, car)
	if err != nil {
		return writeErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCarCollection) DeleteCar(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
