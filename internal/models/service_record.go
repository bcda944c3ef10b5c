package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordStatus is the workflow state of a service record.
type RecordStatus string

const (
	RecordStatusPending    RecordStatus = "pending"
	RecordStatusInProgress RecordStatus = "in_progress"
	RecordStatusCompleted  RecordStatus = "completed"
	RecordStatusCancelled  RecordStatus = "cancelled"
)

// ServiceRecord is one instance of a car undergoing a service.
type ServiceRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CarID      primitive.ObjectID `bson:"car_id" json:"carId"`
	ServiceID  primitive.ObjectID `bson:"service_id" json:"serviceId"`
	StartDate  time.Time          `bson:"start_date" json:"startDate"`
	EndDate    *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Status     RecordStatus       `bson:"status" json:"status"`
	Cost       Money              `bson:"cost" json:"cost"`
	Technician string             `bson:"technician" json:"technician"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PartsUsed is a line item of parts consumed by a service record.
// Cost is the unit cost.
type PartsUsed struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceRecordID primitive.ObjectID `bson:"service_record_id" json:"serviceRecordId"`
	Name            string             `bson:"name" json:"name"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	Cost            Money              `bson:"cost" json:"cost"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
