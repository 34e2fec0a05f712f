package suppliers

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/repository"
	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SupplierRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SupplierRepository {
	return &SupplierRepository{
		repository: r,
	}
}

// SplitItems turns the form's comma-separated item list into trimmed names.
func SplitItems(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("due_date must be YYYY-MM-DD: %w", err)
	}
	return &parsed, nil
}

func (r *SupplierRepository) GetSuppliers() (*[]models.Supplier, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("suppliers").As("s")).
		Select(
			goqu.I("s.id").As("id"),
			goqu.I("s.name").As("name"),
			goqu.I("s.items_supplied").As("items_supplied"),
			goqu.I("s.amount_paid").As("amount_paid"),
			goqu.I("s.amount_due").As("amount_due"),
			goqu.I("s.phone").As("phone"),
			goqu.I("s.due_date").As("due_date"),
			goqu.I("s.created_at").As("created_at"),
		).
		Order(goqu.I("s.created_at").Desc())

	var suppliers []models.Supplier
	err := query.Executor().ScanStructs(&suppliers)

	if err != nil {
		return nil, fmt.Errorf("unable to select suppliers from database: %s", err.Error())
	}

	return &suppliers, nil
}

func (r *SupplierRepository) GetSupplier(id int) (*models.Supplier, error) {
	query := r.repository.GoquDBWrapper.
		From("suppliers").
		Where(goqu.Ex{"id": id})

	var supplier models.Supplier
	found, err := query.Executor().ScanStruct(&supplier)

	if err != nil {
		return nil, fmt.Errorf("unable to select supplier: %s", err.Error())
	}
	if !found {
		return nil, nil
	}

	return &supplier, nil
}

func (r *SupplierRepository) PersistSupplier(req models.SupplierRequest) (*models.Supplier, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	var supplierID int

	record := goqu.Record{
		"name":           req.Name,
		"items_supplied": pq.Array(SplitItems(req.ItemsSupplied)),
		"amount_paid":    req.AmountPaid,
		"amount_due":     req.AmountDue,
	}
	if req.Phone != nil {
		record["phone"] = *req.Phone
	}
	if dueDate != nil {
		record["due_date"] = *dueDate
	}

	query := r.repository.GoquDBWrapper.Insert("suppliers").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&supplierID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("supplier", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return r.GetSupplier(supplierID)
}

func (r *SupplierRepository) UpdateSupplier(id int, req models.SupplierRequest) error {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	record := goqu.Record{
		"name":           req.Name,
		"items_supplied": pq.Array(SplitItems(req.ItemsSupplied)),
		"amount_paid":    req.AmountPaid,
		"amount_due":     req.AmountDue,
		"phone":          req.Phone,
	}
	if dueDate != nil {
		record["due_date"] = *dueDate
	}

	query := r.repository.GoquDBWrapper.Update("suppliers").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update supplier record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier %d not found", id)
	}

	return nil
}

func (r *SupplierRepository) RemoveSupplier(id int) error {
	query := r.repository.GoquDBWrapper.Delete("suppliers").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete supplier record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier %d not found", id)
	}

	return nil
}
