package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// DefaultServiceDuration is used when a service is created without a duration.
const DefaultServiceDuration = 60

// Service is an offering in the shop's catalog, e.g. "Oil Change".
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   Money              `bson:"base_price" json:"basePrice"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	Status      ServiceStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
