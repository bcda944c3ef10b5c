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

// MongoServiceCollection implements ServiceCollection for MongoDB
type MongoServiceCollection struct {
	Collection *mongo.Collection
}

func (c *MongoServiceCollection) InsertService(ctx context.Context, service *models.Service) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	ts := now()
	service.ID = primitive.NewObjectID()
	service.CreatedAt = ts
	service.UpdatedAt = ts
	_, err := c.Collection.InsertOne(ctx, service)
	return writeErr(err)
}

// FindServices returns the catalog ordered by name.
func (c *MongoServiceCollection) FindServices(ctx context.Context) ([]models.Service, error) {
	cur, err := c.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	services := make([]models.Service, 0)
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *MongoServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var service models.Service
	if err := c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&service); err != nil {
		return nil, findOneErr(err)
	}
	return &service, nil
}

// FindServiceByName looks up a service by exact name, ignoring excludeID.
func (c *MongoServiceCollection) FindServiceByName(ctx context.Context, name string, excludeID primitive.ObjectID) (*models.Service, error) {
	filter := bson.M{"name": name}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	var service models.Service
	if err := c.Collection.FindOne(ctx, filter).Decode(&service); err != nil {
		return nil, findOneErr(err)
	}
	return &service, nil
}

func (c *MongoServiceCollection) UpdateService(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": service.ID}, service)
	if err != nil {
		return writeErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoServiceCollection) DeleteService(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
