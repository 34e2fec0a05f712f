package payments

import (
	"fmt"
	"time"

	"storefront/internal/repository"
	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type PaymentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *PaymentRepository {
	return &PaymentRepository{
		repository: r,
	}
}

func (r *PaymentRepository) getPaymentQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("pending_payments").As("p")).
		Select(
			goqu.I("p.id").As("id"),
			goqu.I("p.type").As("type"),
			goqu.I("p.related_id").As("related_id"),
			goqu.I("p.name").As("name"),
			goqu.I("p.phone").As("phone"),
			goqu.I("p.address").As("address"),
			goqu.I("p.amount").As("amount"),
			goqu.I("p.due_date").As("due_date"),
			goqu.I("p.status").As("status"),
			goqu.I("p.notes").As("notes"),
			goqu.I("p.created_at").As("created_at"),
			goqu.I("p.updated_at").As("updated_at"),
		)
}

// GetPaymentsBy lists receivables soonest due first.
func (r *PaymentRepository) GetPaymentsBy(conditions repository.QueryBuilder) (*[]models.PendingPayment, error) {
	aliases := map[string]string{
		"type":       "p.type",
		"related_id": "p.related_id",
	}

	query := r.getPaymentQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("p.due_date").Asc(), goqu.I("p.id").Asc())

	var payments []models.PendingPayment
	err := query.Executor().ScanStructs(&payments)

	if err != nil {
		return nil, fmt.Errorf("unable to select pending payments from database: %s", err.Error())
	}

	return &payments, nil
}

func (r *PaymentRepository) GetPayment(id int) (*models.PendingPayment, error) {
	query := r.getPaymentQuery().Where(goqu.Ex{"p.id": id})

	var payment models.PendingPayment
	found, err := query.Executor().ScanStruct(&payment)

	if err != nil {
		return nil, fmt.Errorf("unable to select pending payment: %s", err.Error())
	}
	if !found {
		return nil, nil
	}

	return &payment, nil
}

func (r *PaymentRepository) PersistPayment(req models.PaymentRequest) (*models.PendingPayment, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("due_date must be YYYY-MM-DD: %w", err)
	}

	var paymentID int

	record := goqu.Record{
		"type":     req.Type,
		"name":     req.Name,
		"amount":   req.Amount,
		"due_date": dueDate,
		"status":   StatusPending,
		"notes":    req.Notes,
	}
	if req.RelatedID != nil {
		record["related_id"] = *req.RelatedID
	}
	if req.Phone != nil {
		record["phone"] = *req.Phone
	}
	if req.Address != nil {
		record["address"] = *req.Address
	}

	query := r.repository.GoquDBWrapper.Insert("pending_payments").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&paymentID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("pending payment", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert pending payment record: %w", err)
	}

	return r.GetPayment(paymentID)
}

func (r *PaymentRepository) UpdatePayment(id int, req models.PaymentRequest) error {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return fmt.Errorf("due_date must be YYYY-MM-DD: %w", err)
	}

	record := goqu.Record{
		"type":       req.Type,
		"related_id": req.RelatedID,
		"name":       req.Name,
		"phone":      req.Phone,
		"address":    req.Address,
		"amount":     req.Amount,
		"due_date":   dueDate,
		"notes":      req.Notes,
		"updated_at": goqu.L("NOW()"),
	}

	query := r.repository.GoquDBWrapper.Update("pending_payments").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update pending payment record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pending payment %d not found", id)
	}

	return nil
}

func (r *PaymentRepository) MarkPaid(id int) error {
	query := r.repository.GoquDBWrapper.Update("pending_payments").
		Set(goqu.Record{
			"status":     StatusPaid,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pending payment %d not found", id)
	}

	return nil
}

func (r *PaymentRepository) RemovePayment(id int) error {
	query := r.repository.GoquDBWrapper.Delete("pending_payments").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete pending payment record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pending payment %d not found", id)
	}

	return nil
}
