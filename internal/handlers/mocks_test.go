package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/garage/internal/models"
)

// result unpacks a (T, error) pair recorded on a mock.
func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

type mockCars struct{ mock.Mock }

func (m *mockCars) List(ctx context.Context) ([]models.Car, error) {
	return result[[]models.Car](m.Called(ctx))
}

func (m *mockCars) Get(ctx context.Context, id string) (*models.Car, error) {
	return result[*models.Car](m.Called(ctx, id))
}

func (m *mockCars) Create(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	return result[*models.Car](m.Called(ctx, req))
}

func (m *mockCars) Update(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	return result[*models.Car](m.Called(ctx, id, req))
}

func (m *mockCars) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockServices struct{ mock.Mock }

func (m *mockServices) List(ctx context.Context) ([]models.Service, error) {
	return result[[]models.Service](m.Called(ctx))
}

func (m *mockServices) Get(ctx context.Context, id string) (*models.Service, error) {
	return result[*models.Service](m.Called(ctx, id))
}

func (m *mockServices) Create(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error) {
	return result[*models.Service](m.Called(ctx, req))
}

func (m *mockServices) Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	return result[*models.Service](m.Called(ctx, id, req))
}

func (m *mockServices) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockRecords struct{ mock.Mock }

func (m *mockRecords) List(ctx context.Context) ([]models.ServiceRecordDetail, error) {
	return result[[]models.ServiceRecordDetail](m.Called(ctx))
}

func (m *mockRecords) ListByCar(ctx context.Context, carID string) ([]models.ServiceRecordDetail, error) {
	return result[[]models.ServiceRecordDetail](m.Called(ctx, carID))
}

func (m *mockRecords) Get(ctx context.Context, id string) (*models.ServiceRecordDetail, error) {
	return result[*models.ServiceRecordDetail](m.Called(ctx, id))
}

func (m *mockRecords) Create(ctx context.Context, req models.CreateServiceRecordRequest) (*models.ServiceRecordDetail, error) {
	return result[*models.ServiceRecordDetail](m.Called(ctx, req))
}

func (m *mockRecords) Update(ctx context.Context, id string, req models.UpdateServiceRecordRequest) (*models.ServiceRecordDetail, error) {
	return result[*models.ServiceRecordDetail](m.Called(ctx, id, req))
}

func (m *mockRecords) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) List(ctx context.Context) ([]models.PaymentDetail, error) {
	return result[[]models.PaymentDetail](m.Called(ctx))
}

func (m *mockPayments) ListByRecord(ctx context.Context, recordID string) ([]models.PaymentDetail, error) {
	return result[[]models.PaymentDetail](m.Called(ctx, recordID))
}

func (m *mockPayments) Get(ctx context.Context, id string) (*models.PaymentDetail, error) {
	return result[*models.PaymentDetail](m.Called(ctx, id))
}

func (m *mockPayments) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.PaymentDetail, error) {
	return result[*models.PaymentDetail](m.Called(ctx, req))
}

func (m *mockPayments) Update(ctx context.Context, id string, req models.UpdatePaymentRequest) (*models.PaymentDetail, error) {
	return result[*models.PaymentDetail](m.Called(ctx, id, req))
}

func (m *mockPayments) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockReports struct{ mock.Mock }

func (m *mockReports) Revenue(ctx context.Context, r models.DateRange) (*models.RevenueReport, error) {
	return result[*models.RevenueReport](m.Called(ctx, r))
}

func (m *mockReports) Performance(ctx context.Context, r models.DateRange) (*models.PerformanceReport, error) {
	return result[*models.PerformanceReport](m.Called(ctx, r))
}

func (m *mockReports) Inventory(ctx context.Context) (*models.InventoryReport, error) {
	return result[*models.InventoryReport](m.Called(ctx))
}

func (m *mockReports) CustomerHistory(ctx context.Context, carID string) (*models.CustomerHistoryReport, error) {
	return result[*models.CustomerHistoryReport](m.Called(ctx, carID))
}

func (m *mockReports) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	return result[*models.DashboardSummary](m.Called(ctx))
}

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return result[*models.User](m.Called(ctx, id))
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return result[*models.User](m.Called(ctx, username))
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return result[*models.User](m.Called(ctx, email))
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
