package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records money received against a service record.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceRecordID primitive.ObjectID `bson:"service_record_id" json:"serviceRecordId"`
	Amount          Money              `bson:"amount" json:"amount"`
	PaymentDate     time.Time          `bson:"payment_date" json:"paymentDate"`
	PaymentMethod   PaymentMethod      `bson:"payment_method" json:"paymentMethod"`
	Status          PaymentStatus      `bson:"status" json:"status"`
	TransactionID   string             `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
