package garage

import (
	"context"
	"errors"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgCarNotFound  = "Car not found"
	msgCarDuplicate = "Car with this VIN or license plate already exists"
	msgCarInUse     = "Car has service records and cannot be removed"
)

// CarManager handles car records.
type CarManager struct {
	cars    db.CarCollection
	records db.ServiceRecordCollection
	tx      db.Transactor
}

func NewCarManager(cars db.CarCollection, records db.ServiceRecordCollection, tx db.Transactor) *CarManager {
	return &CarManager{cars: cars, records: records, tx: tx}
}

func (m *CarManager) List(ctx context.Context) ([]models.Car, error) {
	cars, err := m.cars.FindCars(ctx)
	if err != nil {
		return nil, apperror.Internal("list cars", err)
	}
	return cars, nil
}

func (m *CarManager) Get(ctx context.Context, id string) (*models.Car, error) {
	car, err := m.cars.FindCarByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgCarNotFound)
	}
	return car, nil
}

func (m *CarManager) Create(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := m.checkUnique(ctx, req.VIN, req.LicensePlate, primitive.NilObjectID); err != nil {
		return nil, err
	}

	car := &models.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		VIN:          req.VIN,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Status:       req.Status,
	}
	if car.Status == "" {
		car.Status = models.CarStatusActive
	}
	if err := m.cars.InsertCar(ctx, car); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperror.Conflict(msgCarDuplicate)
		}
		return nil, apperror.Internal("insert car", err)
	}
	return car, nil
}

// Update overwrites only the supplied fields.
func (m *CarManager) Update(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	car, err := m.cars.FindCarByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgCarNotFound)
	}

	vin := strOr(req.VIN, car.VIN)
	plate := strOr(req.LicensePlate, car.LicensePlate)
	if vin != car.VIN || plate != car.LicensePlate {
		if err := m.checkUnique(ctx, vin, plate, car.ID); err != nil {
			return nil, err
		}
	}

	car.Make = strOr(req.Make, car.Make)
	car.Model = strOr(req.Model, car.Model)
	car.Color = strOr(req.Color, car.Color)
	car.VIN = vin
	car.LicensePlate = plate
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Status != nil {
		car.Status = *req.Status
	}

	if err := m.cars.UpdateCar(ctx, car); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperror.Conflict(msgCarDuplicate)
		}
		return nil, storeErr(err, msgCarNotFound)
	}
	return car, nil
}

// Delete removes a car that no service record references.
func (m *CarManager) Delete(ctx context.Context, id string) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return apperror.NotFound(msgCarNotFound)
	}
	return runTx(ctx, m.tx, func(ctx context.Context) error {
		n, err := m.records.CountServiceRecords(ctx, db.RecordFilter{CarID: &oid})
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Conflict(msgCarInUse)
		}
		return storeErr(m.cars.DeleteCar(ctx, oid), msgCarNotFound)
	})
}

func (m *CarManager) checkUnique(ctx context.Context, vin, plate string, self primitive.ObjectID) error {
	_, err := m.cars.FindCarByVINOrPlate(ctx, vin, plate, self)
	switch {
	case err == nil:
		return apperror.Conflict(msgCarDuplicate)
	case errors.Is(err, db.ErrNotFound):
		return nil
	default:
		return apperror.Internal("check car uniqueness", err)
	}
}
