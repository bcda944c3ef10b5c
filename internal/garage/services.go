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
	msgServiceNotFound  = "Service not found"
	msgServiceDuplicate = "Service with this name already exists"
	msgServiceInUse     = "Service has service records and cannot be removed"
)

// ServiceManager handles the service catalog.
type ServiceManager struct {
	services db.ServiceCollection
	records  db.ServiceRecordCollection
	tx       db.Transactor
}

func NewServiceManager(services db.ServiceCollection, records db.ServiceRecordCollection, tx db.Transactor) *ServiceManager {
	return &ServiceManager{services: services, records: records, tx: tx}
}

func (m *ServiceManager) List(ctx context.Context) ([]models.Service, error) {
	services, err := m.services.FindServices(ctx)
	if err != nil {
		return nil, apperror.Internal("list services", err)
	}
	return services, nil
}

func (m *ServiceManager) Get(ctx context.Context, id string) (*models.Service, error) {
	service, err := m.services.FindServiceByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgServiceNotFound)
	}
	return service, nil
}

func (m *ServiceManager) Create(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := m.checkUnique(ctx, req.Name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	service := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Duration:    models.DefaultServiceDuration,
		Status:      req.Status,
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if service.Status == "" {
		service.Status = models.ServiceStatusActive
	}
	if err := m.services.InsertService(ctx, service); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperror.Conflict(msgServiceDuplicate)
		}
		return nil, apperror.Internal("insert service", err)
	}
	return service, nil
}

func (m *ServiceManager) Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	service, err := m.services.FindServiceByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgServiceNotFound)
	}

	if req.Name != nil && *req.Name != service.Name {
		if err := m.checkUnique(ctx, *req.Name, service.ID); err != nil {
			return nil, err
		}
		service.Name = *req.Name
	}
	service.Description = strOr(req.Description, service.Description)
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Status != nil {
		service.Status = *req.Status
	}

	if err := m.services.UpdateService(ctx, service); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperror.Conflict(msgServiceDuplicate)
		}
		return nil, storeErr(err, msgServiceNotFound)
	}
	return service, nil
}

// Delete removes a service that no service record references.
func (m *ServiceManager) Delete(ctx context.Context, id string) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return apperror.NotFound(msgServiceNotFound)
	}
	return runTx(ctx, m.tx, func(ctx context.Context) error {
		n, err := m.records.CountServiceRecords(ctx, db.RecordFilter{ServiceID: &oid})
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Conflict(msgServiceInUse)
		}
		return storeErr(m.services.DeleteService(ctx, oid), msgServiceNotFound)
	})
}

func (m *ServiceManager) checkUnique(ctx context.Context, name string, self primitive.ObjectID) error {
	_, err := m.services.FindServiceByName(ctx, name, self)
	switch {
	case err == nil:
		return apperror.Conflict(msgServiceDuplicate)
	case errors.Is(err, db.ErrNotFound):
		return nil
	default:
		return apperror.Internal("check service uniqueness", err)
	}
}
