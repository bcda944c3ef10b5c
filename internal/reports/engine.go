// Package reports builds the read-only summaries served under /api/reports
// and the dashboard. Sources are read once per report; grouping and
// accumulation happen in memory except for the parts inventory, which the
// store groups server-side.
package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/metrics"
	"github.com/ukydev/garage/internal/models"
)

// Report names used as metric labels.
const (
	ReportRevenue         = "revenue"
	ReportPerformance     = "performance"
	ReportInventory       = "inventory"
	ReportCustomerHistory = "customer_history"
	ReportDashboard       = "dashboard"
)

const recentRecordsLimit = 5

type PaymentSource interface {
	FindPaymentDetails(ctx context.Context, filter db.PaymentFilter) ([]models.PaymentDetail, error)
}

type RecordSource interface {
	FindServiceRecordDetails(ctx context.Context, filter db.RecordFilter) ([]models.ServiceRecordDetail, error)
}

type InventorySource interface {
	AggregateInventory(ctx context.Context) ([]models.PartInventory, error)
}

// Engine produces reports from the entity store.
type Engine struct {
	payments PaymentSource
	records  RecordSource
	parts    InventorySource
}

func NewEngine(payments PaymentSource, records RecordSource, parts InventorySource) *Engine {
	return &Engine{payments: payments, records: records, parts: parts}
}

func observe(report string, start time.Time, err *error) {
	metrics.RecordReport(report, time.Since(start), *err)
}

// Revenue sums payments created inside r, by payment method and by the name
// of the service each payment settles.
func (e *Engine) Revenue(ctx context.Context, r models.DateRange) (_ *models.RevenueReport, err error) {
	defer observe(ReportRevenue, time.Now(), &err)

	payments, err := e.payments.FindPaymentDetails(ctx, db.PaymentFilter{Created: r})
	if err != nil {
		return nil, apperror.Internal("load payments", err)
	}

	report := &models.RevenueReport{
		RevenueByMethod: sumBy(payments, func(p models.PaymentDetail) string {
			return string(p.PaymentMethod)
		}, paymentAmount),
		RevenueByService: sumBy(payments, func(p models.PaymentDetail) string {
			return orUnknown(p.ServiceName())
		}, paymentAmount),
		Payments: payments,
	}
	for _, p := range payments {
		report.TotalRevenue += p.Amount
	}
	return report, nil
}

// Performance groups records created inside r by service name. Totals are
// accumulated first and averages derived once per group afterwards.
func (e *Engine) Performance(ctx context.Context, r models.DateRange) (_ *models.PerformanceReport, err error) {
	defer observe(ReportPerformance, time.Now(), &err)

	records, err := e.records.FindServiceRecordDetails(ctx, db.RecordFilter{Created: r})
	if err != nil {
		return nil, apperror.Internal("load service records", err)
	}

	stats := groupBy(records, recordServiceName, func(s *models.ServiceStats, rec models.ServiceRecordDetail) {
		s.TotalServices++
		s.TotalCost += rec.Cost
		if rec.Status == models.RecordStatusCompleted {
			s.CompletedServices++
		}
	})
	for _, s := range stats {
		s.AverageCost = average(s.TotalCost, s.TotalServices)
	}

	return &models.PerformanceReport{
		ServiceStats:   stats,
		TotalServices:  len(records),
		ServiceRecords: records,
	}, nil
}

// Inventory reports parts consumption grouped by part name.
func (e *Engine) Inventory(ctx context.Context) (_ *models.InventoryReport, err error) {
	defer observe(ReportInventory, time.Now(), &err)

	rows, err := e.parts.AggregateInventory(ctx)
	if err != nil {
		return nil, apperror.Internal("aggregate parts", err)
	}
	report := &models.InventoryReport{
		PartsInventory:   rows,
		TotalUniqueParts: len(rows),
	}
	for _, row := range rows {
		report.TotalPartsCost += row.TotalCost
	}
	return report, nil
}

// CustomerHistory groups records, newest first, by car. An empty carID
// covers every car. A record whose car no longer resolves fails the report.
func (e *Engine) CustomerHistory(ctx context.Context, carID string) (_ *models.CustomerHistoryReport, err error) {
	defer observe(ReportCustomerHistory, time.Now(), &err)

	filter := db.RecordFilter{WithPayments: true}
	if carID != "" {
		oid, perr := db.ParseID(carID)
		if perr != nil {
			return nil, apperror.Validation("carId must be a valid identifier")
		}
		filter.CarID = &oid
	}

	records, err := e.records.FindServiceRecordDetails(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("load service records", err)
	}

	for _, rec := range records {
		if rec.Car == nil {
			return nil, apperror.Integrity(fmt.Sprintf(
				"service record %s references car %s which does not exist", rec.ID.Hex(), rec.CarID.Hex()))
		}
	}

	history := groupBy(records, func(rec models.ServiceRecordDetail) string {
		return rec.Car.HistoryKey()
	}, func(h *models.CarHistory, rec models.ServiceRecordDetail) {
		h.TotalServices++
		for _, p := range rec.Payments {
			h.TotalSpent += p.Amount
		}
		h.Services = append(h.Services, rec)
	})

	return &models.CustomerHistoryReport{
		CarHistory:    history,
		TotalCars:     len(history),
		TotalServices: len(records),
	}, nil
}

// Dashboard summarises every service record for the landing page.
func (e *Engine) Dashboard(ctx context.Context) (_ *models.DashboardSummary, err error) {
	defer observe(ReportDashboard, time.Now(), &err)

	records, err := e.records.FindServiceRecordDetails(ctx, db.RecordFilter{})
	if err != nil {
		return nil, apperror.Internal("load service records", err)
	}

	summary := &models.DashboardSummary{TotalServices: len(records)}
	cars := make(map[string]struct{})
	var hours float64
	for _, rec := range records {
		summary.TotalRevenue += rec.Cost
		cars[rec.CarID.Hex()] = struct{}{}
		if rec.EndDate != nil {
			hours += rec.EndDate.Sub(rec.StartDate).Hours()
		}
	}
	summary.ActiveCars = len(cars)
	if len(records) > 0 {
		summary.AverageServiceHours = math.Round(hours/float64(len(records))*10) / 10
	}
	summary.RecentRecords = records[:min(len(records), recentRecordsLimit)]
	return summary, nil
}

func paymentAmount(p models.PaymentDetail) models.Money { return p.Amount }

func recordServiceName(rec models.ServiceRecordDetail) string {
	if rec.Service == nil {
		return models.UnknownGroup
	}
	return orUnknown(rec.Service.Name)
}

func orUnknown(name string) string {
	if name == "" {
		return models.UnknownGroup
	}
	return name
}

// average divides a cent total by a count and returns currency units.
func average(total models.Money, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count) / 100
}
