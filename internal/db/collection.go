package db

import (
	"context"

	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarCollection defines the interface for car data operations.
type CarCollection interface {
	InsertCar(ctx context.Context, car *models.Car) error
	FindCars(ctx context.Context) ([]models.Car, error)
	FindCarByID(ctx context.Context, id string) (*models.Car, error)
	FindCarByVINOrPlate(ctx context.Context, vin, licensePlate string, excludeID primitive.ObjectID) (*models.Car, error)
	UpdateCar(ctx context.Context, car *models.Car) error
	DeleteCar(ctx context.Context, id primitive.ObjectID) error
}

// ServiceCollection defines the interface for service catalog operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, service *models.Service) error
	FindServices(ctx context.Context) ([]models.Service, error)
	FindServiceByID(ctx context.Context, id string) (*models.Service, error)
	FindServiceByName(ctx context.Context, name string, excludeID primitive.ObjectID) (*models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id primitive.ObjectID) error
}

// RecordFilter narrows service record queries. Zero values match everything.
type RecordFilter struct {
	CarID        *primitive.ObjectID
	ServiceID    *primitive.ObjectID
	Created      models.DateRange
	WithPayments bool
	Limit        int64
}

// ServiceRecordCollection defines the interface for service record operations.
type ServiceRecordCollection interface {
	InsertServiceRecord(ctx context.Context, record *models.ServiceRecord) error
	FindServiceRecordByID(ctx context.Context, id string) (*models.ServiceRecord, error)
	FindServiceRecordDetails(ctx context.Context, filter RecordFilter) ([]models.ServiceRecordDetail, error)
	FindServiceRecordDetailByID(ctx context.Context, id string) (*models.ServiceRecordDetail, error)
	CountServiceRecords(ctx context.Context, filter RecordFilter) (int64, error)
	UpdateServiceRecord(ctx context.Context, record *models.ServiceRecord) error
	DeleteServiceRecord(ctx context.Context, id primitive.ObjectID) error
}

// PartsCollection defines the interface for parts line items.
type PartsCollection interface {
	InsertParts(ctx context.Context, recordID primitive.ObjectID, parts []models.PartsUsed) error
	DeletePartsByRecord(ctx context.Context, recordID primitive.ObjectID) (int64, error)
	AggregateInventory(ctx context.Context) ([]models.PartInventory, error)
}

// PaymentFilter narrows payment queries. Zero values match everything.
type PaymentFilter struct {
	ServiceRecordID *primitive.ObjectID
	Created         models.DateRange
}

// PaymentCollection defines the interface for payment operations.
type PaymentCollection interface {
	InsertPayment(ctx context.Context, payment *models.Payment) error
	FindPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	FindPaymentDetails(ctx context.Context, filter PaymentFilter) ([]models.PaymentDetail, error)
	FindPaymentDetailByID(ctx context.Context, id string) (*models.PaymentDetail, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id primitive.ObjectID) error
	DeletePaymentsByRecord(ctx context.Context, recordID primitive.ObjectID) (int64, error)
}

// Transactor runs fn so that every write made through the context it
// receives commits or rolls back together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
