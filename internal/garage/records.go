package garage

import (
	"context"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/models"
	"github.com/ukydev/garage/internal/validation"
)

const msgRecordNotFound = "Service record not found"

// RecordManager handles service records and the parts they own.
type RecordManager struct {
	records  db.ServiceRecordCollection
	parts    db.PartsCollection
	payments db.PaymentCollection
	cars     db.CarCollection
	services db.ServiceCollection
	tx       db.Transactor
}

func NewRecordManager(
	records db.ServiceRecordCollection,
	parts db.PartsCollection,
	payments db.PaymentCollection,
	cars db.CarCollection,
	services db.ServiceCollection,
	tx db.Transactor,
) *RecordManager {
	return &RecordManager{
		records:  records,
		parts:    parts,
		payments: payments,
		cars:     cars,
		services: services,
		tx:       tx,
	}
}

func (m *RecordManager) List(ctx context.Context) ([]models.ServiceRecordDetail, error) {
	details, err := m.records.FindServiceRecordDetails(ctx, db.RecordFilter{})
	if err != nil {
		return nil, apperror.Internal("list service records", err)
	}
	return details, nil
}

// ListByCar returns the records of one car. A malformed id matches nothing.
func (m *RecordManager) ListByCar(ctx context.Context, carID string) ([]models.ServiceRecordDetail, error) {
	oid, err := db.ParseID(carID)
	if err != nil {
		return []models.ServiceRecordDetail{}, nil
	}
	details, err := m.records.FindServiceRecordDetails(ctx, db.RecordFilter{CarID: &oid})
	if err != nil {
		return nil, apperror.Internal("list service records by car", err)
	}
	return details, nil
}

func (m *RecordManager) Get(ctx context.Context, id string) (*models.ServiceRecordDetail, error) {
	detail, err := m.records.FindServiceRecordDetailByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgRecordNotFound)
	}
	return detail, nil
}

// Create inserts the record and its parts in one transaction.
func (m *RecordManager) Create(ctx context.Context, req models.CreateServiceRecordRequest) (*models.ServiceRecordDetail, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := validateParts(req.PartsUsed); err != nil {
		return nil, err
	}

	record := &models.ServiceRecord{
		StartDate:  req.StartDate.Time,
		Status:     req.Status,
		Cost:       req.Cost,
		Technician: req.Technician,
		Notes:      req.Notes,
	}
	if req.EndDate != nil {
		end := req.EndDate.Time
		record.EndDate = &end
	}
	if record.Status == "" {
		record.Status = models.RecordStatusPending
	}
	if err := checkDates(record); err != nil {
		return nil, err
	}

	err := runTx(ctx, m.tx, func(ctx context.Context) error {
		car, err := m.cars.FindCarByID(ctx, req.CarID)
		if err != nil {
			return storeErr(err, msgCarNotFound)
		}
		service, err := m.services.FindServiceByID(ctx, req.ServiceID)
		if err != nil {
			return storeErr(err, msgServiceNotFound)
		}
		record.CarID = car.ID
		record.ServiceID = service.ID
		if err := m.records.InsertServiceRecord(ctx, record); err != nil {
			return err
		}
		return m.parts.InsertParts(ctx, record.ID, partsFrom(req.PartsUsed))
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, record.ID.Hex())
}

// Update overwrites the supplied fields. A supplied parts list, even an empty
// one, replaces every stored part of the record in the same transaction.
func (m *RecordManager) Update(ctx context.Context, id string, req models.UpdateServiceRecordRequest) (*models.ServiceRecordDetail, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.PartsUsed != nil {
		if err := validateParts(*req.PartsUsed); err != nil {
			return nil, err
		}
	}

	var recordID string
	err := runTx(ctx, m.tx, func(ctx context.Context) error {
		record, err := m.records.FindServiceRecordByID(ctx, id)
		if err != nil {
			return storeErr(err, msgRecordNotFound)
		}
		if req.CarID != nil && *req.CarID != record.CarID.Hex() {
			car, err := m.cars.FindCarByID(ctx, *req.CarID)
			if err != nil {
				return storeErr(err, msgCarNotFound)
			}
			record.CarID = car.ID
		}
		if req.ServiceID != nil && *req.ServiceID != record.ServiceID.Hex() {
			service, err := m.services.FindServiceByID(ctx, *req.ServiceID)
			if err != nil {
				return storeErr(err, msgServiceNotFound)
			}
			record.ServiceID = service.ID
		}
		if req.StartDate != nil {
			record.StartDate = req.StartDate.Time
		}
		if req.EndDate.Set {
			record.EndDate = nil
			if req.EndDate.Value != nil {
				end := req.EndDate.Value.Time
				record.EndDate = &end
			}
		}
		if req.Status != nil {
			record.Status = *req.Status
		}
		if req.Cost != nil {
			record.Cost = *req.Cost
		}
		record.Technician = strOr(req.Technician, record.Technician)
		record.Notes = strOr(req.Notes, record.Notes)
		if err := checkDates(record); err != nil {
			return err
		}

		if err := m.records.UpdateServiceRecord(ctx, record); err != nil {
			return storeErr(err, msgRecordNotFound)
		}
		if req.PartsUsed != nil {
			if _, err := m.parts.DeletePartsByRecord(ctx, record.ID); err != nil {
				return err
			}
			if err := m.parts.InsertParts(ctx, record.ID, partsFrom(*req.PartsUsed)); err != nil {
				return err
			}
		}
		recordID = record.ID.Hex()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, recordID)
}

// Delete removes the record together with its parts and payments.
func (m *RecordManager) Delete(ctx context.Context, id string) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return apperror.NotFound(msgRecordNotFound)
	}
	return runTx(ctx, m.tx, func(ctx context.Context) error {
		if _, err := m.parts.DeletePartsByRecord(ctx, oid); err != nil {
			return err
		}
		if _, err := m.payments.DeletePaymentsByRecord(ctx, oid); err != nil {
			return err
		}
		return storeErr(m.records.DeleteServiceRecord(ctx, oid), msgRecordNotFound)
	})
}

func validateParts(parts []models.PartRequest) error {
	for i, p := range parts {
		if err := validation.Struct(p); err != nil {
			return apperror.Validationf("partsUsed[%d]: %v", i, err)
		}
	}
	return nil
}

func partsFrom(reqs []models.PartRequest) []models.PartsUsed {
	parts := make([]models.PartsUsed, len(reqs))
	for i, p := range reqs {
		parts[i] = models.PartsUsed{Name: p.Name, Quantity: p.Quantity, Cost: p.Cost}
	}
	return parts
}

func checkDates(r *models.ServiceRecord) error {
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return apperror.Validation("endDate must not be before startDate")
	}
	return nil
}
