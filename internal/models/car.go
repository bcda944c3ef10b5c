package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarStatus is the lifecycle state of a car on the shop's books.
type CarStatus string

const (
	CarStatusActive   CarStatus = "active"
	CarStatusInactive CarStatus = "inactive"
)

// Car represents a customer vehicle known to the shop.
type Car struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Make         string             `bson:"make" json:"make"`
	Model        string             `bson:"model" json:"model"`
	Year         int                `bson:"year" json:"year"`
	LicensePlate string             `bson:"license_plate" json:"licensePlate"`
	VIN          string             `bson:"vin" json:"vin"`
	Color        string             `bson:"color" json:"color"`
	Mileage      int                `bson:"mileage" json:"mileage"`
	Status       CarStatus          `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// HistoryKey is the label a car is grouped under in customer history.
func (c *Car) HistoryKey() string {
	return c.Make + " " + c.Model + " (" + c.LicensePlate + ")"
}
