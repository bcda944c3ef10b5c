package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/garage/internal/models"
)

func TestStruct_CreateCar(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := models.CreateCarRequest{Make: "Toyota", Model: "Corolla", Year: 2020, LicensePlate: "ABC123", VIN: "VIN001"}
		assert.NoError(t, Struct(&req))
	})

	t.Run("missing fields use json names", func(t *testing.T) {
		req := models.CreateCarRequest{Make: "Toyota"}
		err := Struct(&req)
		require.Error(t, err)

		var fieldErrs Errors
		require.True(t, errors.As(err, &fieldErrs))
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"model", "year", "licensePlate", "vin"}, fields)
		assert.Contains(t, err.Error(), "licensePlate is required")
	})

	t.Run("bad status", func(t *testing.T) {
		req := models.CreateCarRequest{Make: "a", Model: "b", Year: 1, LicensePlate: "c", VIN: "d", Status: "scrapped"}
		err := Struct(&req)
		require.Error(t, err)
		assert.Equal(t, "status must be one of: active inactive", err.Error())
	})
}

func TestStruct_UpdateCarSkipsAbsentFields(t *testing.T) {
	assert.NoError(t, Struct(&models.UpdateCarRequest{}))

	empty := ""
	err := Struct(&models.UpdateCarRequest{VIN: &empty})
	require.Error(t, err)
	assert.Equal(t, "vin must not be empty", err.Error())

	negative := -5
	err = Struct(&models.UpdateCarRequest{Mileage: &negative})
	require.Error(t, err)
	assert.Equal(t, "mileage must be greater than or equal to 0", err.Error())
}

func TestStruct_Payment(t *testing.T) {
	amount := models.Money(4999)
	req := models.CreatePaymentRequest{
		ServiceRecordID: "not-an-id",
		Amount:          &amount,
		PaymentMethod:   models.PaymentMethodCash,
	}
	err := Struct(&req)
	require.Error(t, err)
	assert.Equal(t, "serviceRecordId must be a valid identifier", err.Error())

	req.ServiceRecordID = "507f1f77bcf86cd799439011"
	assert.NoError(t, Struct(&req))

	zero := models.Money(0)
	req.Amount = &zero
	assert.NoError(t, Struct(&req))

	req.Amount = nil
	assert.EqualError(t, Struct(&req), "amount is required")
}

func TestStruct_PartRequest(t *testing.T) {
	err := Struct(models.PartRequest{Name: "Filter", Quantity: 0, Cost: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be greater than or equal to 1")

	assert.NoError(t, Struct(models.PartRequest{Name: "Filter", Quantity: 2, Cost: 500}))
}

func TestStruct_RegisterRequest(t *testing.T) {
	err := Struct(models.RegisterRequest{Username: "al", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var fieldErrs Errors
	require.ErrorAs(t, err, &fieldErrs)
	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = fe.Message
	}
	assert.Contains(t, messages, "username must be at least 3 characters long")
	assert.Contains(t, messages, "email must be a valid email address")
	assert.Contains(t, messages, "password must be at least 8 characters long")
}
