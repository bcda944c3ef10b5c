package handlers

import (
	"context"

	"github.com/ukydev/garage/internal/models"
)

// CarService is the record service behind /api/cars.
type CarService interface {
	List(ctx context.Context) ([]models.Car, error)
	Get(ctx context.Context, id string) (*models.Car, error)
	Create(ctx context.Context, req models.CreateCarRequest) (*models.Car, error)
	Update(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService is the record service behind /api/services.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error)
	Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// RecordService is the record service behind /api/service-records.
type RecordService interface {
	List(ctx context.Context) ([]models.ServiceRecordDetail, error)
	ListByCar(ctx context.Context, carID string) ([]models.ServiceRecordDetail, error)
	Get(ctx context.Context, id string) (*models.ServiceRecordDetail, error)
	Create(ctx context.Context, req models.CreateServiceRecordRequest) (*models.ServiceRecordDetail, error)
	Update(ctx context.Context, id string, req models.UpdateServiceRecordRequest) (*models.ServiceRecordDetail, error)
	Delete(ctx context.Context, id string) error
}

// PaymentService is the record service behind /api/payments.
type PaymentService interface {
	List(ctx context.Context) ([]models.PaymentDetail, error)
	ListByRecord(ctx context.Context, recordID string) ([]models.PaymentDetail, error)
	Get(ctx context.Context, id string) (*models.PaymentDetail, error)
	Create(ctx context.Context, req models.CreatePaymentRequest) (*models.PaymentDetail, error)
	Update(ctx context.Context, id string, req models.UpdatePaymentRequest) (*models.PaymentDetail, error)
	Delete(ctx context.Context, id string) error
}

// ReportService generates the admin reports and the dashboard.
type ReportService interface {
	Revenue(ctx context.Context, r models.DateRange) (*models.RevenueReport, error)
	Performance(ctx context.Context, r models.DateRange) (*models.PerformanceReport, error)
	Inventory(ctx context.Context) (*models.InventoryReport, error)
	CustomerHistory(ctx context.Context, carID string) (*models.CustomerHistoryReport, error)
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
}
