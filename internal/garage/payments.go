package garage

import (
	"context"
	"time"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/models"
)

const msgPaymentNotFound = "Payment not found"

// PaymentManager handles payments against service records.
type PaymentManager struct {
	payments db.PaymentCollection
	records  db.ServiceRecordCollection
	tx       db.Transactor
	now      func() time.Time
}

func NewPaymentManager(payments db.PaymentCollection, records db.ServiceRecordCollection, tx db.Transactor) *PaymentManager {
	return &PaymentManager{
		payments: payments,
		records:  records,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *PaymentManager) List(ctx context.Context) ([]models.PaymentDetail, error) {
	details, err := m.payments.FindPaymentDetails(ctx, db.PaymentFilter{})
	if err != nil {
		return nil, apperror.Internal("list payments", err)
	}
	return details, nil
}

// ListByRecord returns the payments of one service record. A malformed id
// matches nothing.
func (m *PaymentManager) ListByRecord(ctx context.Context, recordID string) ([]models.PaymentDetail, error) {
	oid, err := db.ParseID(recordID)
	if err != nil {
		return []models.PaymentDetail{}, nil
	}
	details, err := m.payments.FindPaymentDetails(ctx, db.PaymentFilter{ServiceRecordID: &oid})
	if err != nil {
		return nil, apperror.Internal("list payments by record", err)
	}
	return details, nil
}

func (m *PaymentManager) Get(ctx context.Context, id string) (*models.PaymentDetail, error) {
	detail, err := m.payments.FindPaymentDetailByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgPaymentNotFound)
	}
	return detail, nil
}

// Create checks the service record exists and inserts the payment in the
// same transaction.
func (m *PaymentManager) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.PaymentDetail, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		Amount:        *req.Amount,
		PaymentDate:   m.now(),
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = req.PaymentDate.Time
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	err := runTx(ctx, m.tx, func(ctx context.Context) error {
		record, err := m.records.FindServiceRecordByID(ctx, req.ServiceRecordID)
		if err != nil {
			return storeErr(err, msgRecordNotFound)
		}
		payment.ServiceRecordID = record.ID
		return m.payments.InsertPayment(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, payment.ID.Hex())
}

func (m *PaymentManager) Update(ctx context.Context, id string, req models.UpdatePaymentRequest) (*models.PaymentDetail, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var paymentID string
	err := runTx(ctx, m.tx, func(ctx context.Context) error {
		payment, err := m.payments.FindPaymentByID(ctx, id)
		if err != nil {
			return storeErr(err, msgPaymentNotFound)
		}
		if req.ServiceRecordID != nil && *req.ServiceRecordID != payment.ServiceRecordID.Hex() {
			record, err := m.records.FindServiceRecordByID(ctx, *req.ServiceRecordID)
			if err != nil {
				return storeErr(err, msgRecordNotFound)
			}
			payment.ServiceRecordID = record.ID
		}
		if req.Amount != nil {
			payment.Amount = *req.Amount
		}
		if req.PaymentDate != nil {
			payment.PaymentDate = req.PaymentDate.Time
		}
		if req.PaymentMethod != nil {
			payment.PaymentMethod = *req.PaymentMethod
		}
		if req.Status != nil {
			payment.Status = *req.Status
		}
		payment.TransactionID = strOr(req.TransactionID, payment.TransactionID)
		payment.Notes = strOr(req.Notes, payment.Notes)

		paymentID = payment.ID.Hex()
		return storeErr(m.payments.UpdatePayment(ctx, payment), msgPaymentNotFound)
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, paymentID)
}

func (m *PaymentManager) Delete(ctx context.Context, id string) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return apperror.NotFound(msgPaymentNotFound)
	}
	return storeErr(m.payments.DeletePayment(ctx, oid), msgPaymentNotFound)
}
