package garage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCarAndService(t *testing.T, m *managers) (*models.Car, *models.Service) {
	t.Helper()
	ctx := context.Background()
	car, err := m.cars.Create(ctx, corolla())
	require.NoError(t, err)
	svc, err := m.services.Create(ctx, models.CreateServiceRequest{Name: "Oil Change", BasePrice: models.Cents(4999)})
	require.NoError(t, err)
	return car, svc
}

func recordRequest(car *models.Car, svc *models.Service) models.CreateServiceRecordRequest {
	return models.CreateServiceRecordRequest{
		CarID:      car.ID.Hex(),
		ServiceID:  svc.ID.Hex(),
		StartDate:  &models.DateTime{Time: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		Technician: "Alex",
		Cost:       models.Cents(4999),
	}
}

func TestRecordManager_CreateWithParts(t *testing.T) {
	m := newManagers()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{
		{Name: "Filter", Quantity: 1, Cost: models.Cents(1200)},
		{Name: "Oil", Quantity: 4, Cost: models.Cents(800)},
	}

	detail, err := m.records.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RecordStatusPending, detail.Status)
	require.NotNil(t, detail.Car)
	require.NotNil(t, detail.Service)
	assert.Equal(t, "Oil Change", detail.Service.Name)
	assert.Len(t, detail.PartsUsed, 2)
}

func TestRecordManager_CreateUnknownCar(t *testing.T) {
	m := newManagers()
	_, svc := seedCarAndService(t, m)
	req := recordRequest(&models.Car{ID: primitive.NewObjectID()}, svc)

	_, err := m.records.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Car not found", apperror.From(err).Message)
	assert.Empty(t, m.store.records)
}

func TestRecordManager_CreateRequiresTechnician(t *testing.T) {
	m := newManagers()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.Technician = ""

	_, err := m.records.Create(context.Background(), req)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRecordManager_CreateRollsBackOnPartsFailure(t *testing.T) {
	m := newManagers()
	car, svc := seedCarAndService(t, m)
	m.store.failInsertParts = errors.New("write conflict")
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}}

	_, err := m.records.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindTransaction))
	assert.Equal(t, 500, apperror.From(err).Status())
	assert.Empty(t, m.store.records)
}

func TestRecordManager_UpdateReplacesParts(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}, {Name: "Oil", Quantity: 4}}
	detail, err := m.records.Create(ctx, req)
	require.NoError(t, err)

	updated, err := m.records.Update(ctx, detail.ID.Hex(), models.UpdateServiceRecordRequest{
		PartsUsed: &[]models.PartRequest{{Name: "Gasket", Quantity: 2, Cost: models.Cents(300)}},
	})
	require.NoError(t, err)
	require.Len(t, updated.PartsUsed, 1)
	assert.Equal(t, "Gasket", updated.PartsUsed[0].Name)
	assert.Equal(t, "Alex", updated.Technician)
	assert.Len(t, m.store.partsOf(detail.ID), 1)
}

func TestRecordManager_UpdateEmptyPartsClears(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}}
	detail, err := m.records.Create(ctx, req)
	require.NoError(t, err)

	clearParts := models.UpdateServiceRecordRequest{PartsUsed: &[]models.PartRequest{}}
	for i := 0; i < 2; i++ {
		updated, err := m.records.Update(ctx, detail.ID.Hex(), clearParts)
		require.NoError(t, err)
		assert.Empty(t, updated.PartsUsed)
		assert.Empty(t, m.store.partsOf(detail.ID))
	}
}

func TestRecordManager_UpdateWithoutPartsKeepsThem(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}}
	detail, err := m.records.Create(ctx, req)
	require.NoError(t, err)

	status := models.RecordStatusCompleted
	updated, err := m.records.Update(ctx, detail.ID.Hex(), models.UpdateServiceRecordRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.RecordStatusCompleted, updated.Status)
	assert.Len(t, updated.PartsUsed, 1)
}

func TestRecordManager_UpdateInvalidPart(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	detail, err := m.records.Create(ctx, recordRequest(car, svc))
	require.NoError(t, err)

	_, err = m.records.Update(ctx, detail.ID.Hex(), models.UpdateServiceRecordRequest{
		PartsUsed: &[]models.PartRequest{{Name: "Filter", Quantity: 0}},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "partsUsed[0]")
}

func TestRecordManager_UpdateEndBeforeStart(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	detail, err := m.records.Create(ctx, recordRequest(car, svc))
	require.NoError(t, err)

	end := models.OptionalDateTime{Set: true, Value: &models.DateTime{Time: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}}
	_, err = m.records.Update(ctx, detail.ID.Hex(), models.UpdateServiceRecordRequest{EndDate: end})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRecordManager_UpdateEndDate(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.EndDate = &models.DateTime{Time: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)}
	detail, err := m.records.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, detail.EndDate)

	update := func(body string) *models.ServiceRecordDetail {
		t.Helper()
		var upd models.UpdateServiceRecordRequest
		require.NoError(t, json.Unmarshal([]byte(body), &upd))
		out, err := m.records.Update(ctx, detail.ID.Hex(), upd)
		require.NoError(t, err)
		return out
	}

	kept := update(`{"technician":"Sam"}`)
	require.NotNil(t, kept.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), *kept.EndDate)

	moved := update(`{"endDate":"2024-01-01T12:30:00Z"}`)
	require.NotNil(t, moved.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), *moved.EndDate)

	cleared := update(`{"endDate":null}`)
	assert.Nil(t, cleared.EndDate)
	assert.Nil(t, m.store.records[detail.ID].EndDate)
}

func TestRecordManager_CreateInvalidPartIsIndexed(t *testing.T) {
	m := newManagers()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}, {Name: "Oil", Quantity: 0}}

	_, err := m.records.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "partsUsed[1]: ")
	assert.Empty(t, m.store.records)
}

func TestRecordManager_DeleteCascades(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	req := recordRequest(car, svc)
	req.PartsUsed = []models.PartRequest{{Name: "Filter", Quantity: 1}, {Name: "Oil", Quantity: 4}}
	detail, err := m.records.Create(ctx, req)
	require.NoError(t, err)
	_, err = m.payments.Create(ctx, models.CreatePaymentRequest{
		ServiceRecordID: detail.ID.Hex(),
		Amount:          ptr(models.Cents(4999)),
		PaymentMethod:   models.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.NoError(t, m.records.Delete(ctx, detail.ID.Hex()))
	assert.Empty(t, m.store.records)
	assert.Empty(t, m.store.parts)
	assert.Empty(t, m.store.payments)

	err = m.records.Delete(ctx, detail.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRecordManager_ListByCar(t *testing.T) {
	m := newManagers()
	ctx := context.Background()
	car, svc := seedCarAndService(t, m)
	_, err := m.records.Create(ctx, recordRequest(car, svc))
	require.NoError(t, err)

	list, err := m.records.ListByCar(ctx, car.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = m.records.ListByCar(ctx, "not-an-id")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
