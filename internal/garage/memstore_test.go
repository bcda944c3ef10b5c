package garage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory implementation of every collection plus a
// snapshotting transactor, so rollbacks can be observed.
type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	cars     map[primitive.ObjectID]models.Car
	services map[primitive.ObjectID]models.Service
	records  map[primitive.ObjectID]models.ServiceRecord
	parts    map[primitive.ObjectID]models.PartsUsed
	payments map[primitive.ObjectID]models.Payment

	failInsertParts error
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		cars:     map[primitive.ObjectID]models.Car{},
		services: map[primitive.ObjectID]models.Service{},
		records:  map[primitive.ObjectID]models.ServiceRecord{},
		parts:    map[primitive.ObjectID]models.PartsUsed{},
		payments: map[primitive.ObjectID]models.Payment{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// inRange applies a DateRange the way the Mongo $gte/$lte filter does.
func inRange(r models.DateRange, t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	cars, services, records := cloneMap(s.cars), cloneMap(s.services), cloneMap(s.records)
	parts, payments := cloneMap(s.parts), cloneMap(s.payments)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.cars, s.services, s.records, s.parts, s.payments = cars, services, records, parts, payments
		s.mu.Unlock()
		return err
	}
	return nil
}

// cars

func (s *memStore) InsertCar(_ context.Context, car *models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cars {
		if c.VIN == car.VIN || c.LicensePlate == car.LicensePlate {
			return db.ErrDuplicate
		}
	}
	car.ID = primitive.NewObjectID()
	car.CreatedAt = s.tick()
	car.UpdatedAt = car.CreatedAt
	s.cars[car.ID] = *car
	return nil
}

func (s *memStore) FindCars(context.Context) ([]models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Car, 0, len(s.cars))
	for _, c := range s.cars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) FindCarByID(_ context.Context, id string) (*models.Car, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cars[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) FindCarByVINOrPlate(_ context.Context, vin, plate string, exclude primitive.ObjectID) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cars {
		if c.ID != exclude && (c.VIN == vin || c.LicensePlate == plate) {
			return &c, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) UpdateCar(_ context.Context, car *models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[car.ID]; !ok {
		return db.ErrNotFound
	}
	car.UpdatedAt = s.tick()
	s.cars[car.ID] = *car
	return nil
}

func (s *memStore) DeleteCar(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.cars, id)
	return nil
}

// services

func (s *memStore) InsertService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = primitive.NewObjectID()
	svc.CreatedAt = s.tick()
	svc.UpdatedAt = svc.CreatedAt
	s.services[svc.ID] = *svc
	return nil
}

func (s *memStore) FindServices(context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) FindServiceByID(_ context.Context, id string) (*models.Service, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &svc, nil
}

func (s *memStore) FindServiceByName(_ context.Context, name string, exclude primitive.ObjectID) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.services {
		if svc.ID != exclude && svc.Name == name {
			return &svc, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[svc.ID]; !ok {
		return db.ErrNotFound
	}
	s.services[svc.ID] = *svc
	return nil
}

func (s *memStore) DeleteService(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.services, id)
	return nil
}

// service records

func (s *memStore) InsertServiceRecord(_ context.Context, r *models.ServiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = s.tick()
	r.UpdatedAt = r.CreatedAt
	s.records[r.ID] = *r
	return nil
}

func (s *memStore) FindServiceRecordByID(_ context.Context, id string) (*models.ServiceRecord, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) matchRecord(r models.ServiceRecord, f db.RecordFilter) bool {
	if f.CarID != nil && r.CarID != *f.CarID {
		return false
	}
	if f.ServiceID != nil && r.ServiceID != *f.ServiceID {
		return false
	}
	return inRange(f.Created, r.CreatedAt)
}

func (s *memStore) detail(r models.ServiceRecord, withPayments bool) models.ServiceRecordDetail {
	d := models.ServiceRecordDetail{ServiceRecord: r, PartsUsed: []models.PartsUsed{}}
	if c, ok := s.cars[r.CarID]; ok {
		d.Car = &c
	}
	if svc, ok := s.services[r.ServiceID]; ok {
		d.Service = &svc
	}
	for _, p := range s.parts {
		if p.ServiceRecordID == r.ID {
			d.PartsUsed = append(d.PartsUsed, p)
		}
	}
	sort.Slice(d.PartsUsed, func(i, j int) bool { return d.PartsUsed[i].Name < d.PartsUsed[j].Name })
	if withPayments {
		for _, p := range s.payments {
			if p.ServiceRecordID == r.ID {
				d.Payments = append(d.Payments, p)
			}
		}
	}
	return d
}

func (s *memStore) FindServiceRecordDetails(_ context.Context, f db.RecordFilter) ([]models.ServiceRecordDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ServiceRecordDetail{}
	for _, r := range s.records {
		if s.matchRecord(r, f) {
			out = append(out, s.detail(r, f.WithPayments))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *memStore) FindServiceRecordDetailByID(_ context.Context, id string) (*models.ServiceRecordDetail, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	d := s.detail(r, false)
	return &d, nil
}

func (s *memStore) CountServiceRecords(_ context.Context, f db.RecordFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.records {
		if s.matchRecord(r, f) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) UpdateServiceRecord(_ context.Context, r *models.ServiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		return db.ErrNotFound
	}
	s.records[r.ID] = *r
	return nil
}

func (s *memStore) DeleteServiceRecord(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// parts

func (s *memStore) InsertParts(_ context.Context, recordID primitive.ObjectID, parts []models.PartsUsed) error {
	if s.failInsertParts != nil {
		return s.failInsertParts
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range parts {
		parts[i].ID = primitive.NewObjectID()
		parts[i].ServiceRecordID = recordID
		s.parts[parts[i].ID] = parts[i]
	}
	return nil
}

func (s *memStore) DeletePartsByRecord(_ context.Context, recordID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.parts {
		if p.ServiceRecordID == recordID {
			delete(s.parts, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) AggregateInventory(context.Context) ([]models.PartInventory, error) {
	return nil, nil
}

func (s *memStore) partsOf(recordID primitive.ObjectID) []models.PartsUsed {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PartsUsed
	for _, p := range s.parts {
		if p.ServiceRecordID == recordID {
			out = append(out, p)
		}
	}
	return out
}

// payments

func (s *memStore) InsertPayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.payments[p.ID] = *p
	return nil
}

func (s *memStore) FindPaymentByID(_ context.Context, id string) (*models.Payment, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) paymentDetail(p models.Payment) models.PaymentDetail {
	d := models.PaymentDetail{Payment: p}
	if r, ok := s.records[p.ServiceRecordID]; ok {
		d.ServiceRecord = &r
		if c, ok := s.cars[r.CarID]; ok {
			d.Car = &c
		}
		if svc, ok := s.services[r.ServiceID]; ok {
			d.Service = &svc
		}
	}
	return d
}

func (s *memStore) FindPaymentDetails(_ context.Context, f db.PaymentFilter) ([]models.PaymentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PaymentDetail{}
	for _, p := range s.payments {
		if f.ServiceRecordID != nil && p.ServiceRecordID != *f.ServiceRecordID {
			continue
		}
		if !inRange(f.Created, p.CreatedAt) {
			continue
		}
		out = append(out, s.paymentDetail(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) FindPaymentDetailByID(_ context.Context, id string) (*models.PaymentDetail, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	d := s.paymentDetail(p)
	return &d, nil
}

func (s *memStore) UpdatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return db.ErrNotFound
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *memStore) DeletePayment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *memStore) DeletePaymentsByRecord(_ context.Context, recordID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.payments {
		if p.ServiceRecordID == recordID {
			delete(s.payments, id)
			n++
		}
	}
	return n, nil
}

var (
	_ db.CarCollection           = (*memStore)(nil)
	_ db.ServiceCollection       = (*memStore)(nil)
	_ db.ServiceRecordCollection = (*memStore)(nil)
	_ db.PartsCollection         = (*memStore)(nil)
	_ db.PaymentCollection       = (*memStore)(nil)
	_ db.Transactor              = (*memStore)(nil)
)

type managers struct {
	store    *memStore
	cars     *CarManager
	services *ServiceManager
	records  *RecordManager
	payments *PaymentManager
}

func newManagers() *managers {
	s := newMemStore()
	return &managers{
		store:    s,
		cars:     NewCarManager(s, s, s),
		services: NewServiceManager(s, s, s),
		records:  NewRecordManager(s, s, s, s, s, s),
		payments: NewPaymentManager(s, s, s),
	}
}
