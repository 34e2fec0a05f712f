package sales

import (
	"fmt"

	"storefront/internal/repository"
	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SaleRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SaleRepository {
	return &SaleRepository{
		repository: r,
	}
}

func (r *SaleRepository) getSaleQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("sales").As("s")).
		Select(
			goqu.I("s.id").As("id"),
			goqu.I("s.item_id").As("item_id"),
			goqu.I("s.item_name").As("item_name"),
			goqu.I("s.quantity_sold").As("quantity_sold"),
			goqu.I("s.selling_price").As("selling_price"),
			goqu.I("s.total_revenue").As("total_revenue"),
			goqu.I("s.sale_date").As("sale_date"),
			goqu.I("s.created_at").As("created_at"),
		)
}

func (r *SaleRepository) GetSales() (*[]models.Sale, error) {
	query := r.getSaleQuery().
		Order(goqu.I("s.sale_date").Desc(), goqu.I("s.id").Desc())

	var sales []models.Sale
	err := query.Executor().ScanStructs(&sales)

	if err != nil {
		return nil, fmt.Errorf("unable to select sales from database: %s", err.Error())
	}

	return &sales, nil
}

func (r *SaleRepository) GetSale(id int) (*models.Sale, error) {
	query := r.getSaleQuery().Where(goqu.Ex{"s.id": id})

	var sale models.Sale
	found, err := query.Executor().ScanStruct(&sale)

	if err != nil {
		return nil, fmt.Errorf("unable to select sale: %s", err.Error())
	}
	if !found {
		return nil, nil
	}

	return &sale, nil
}

func (r *SaleRepository) PersistSale(sale models.Sale) (*models.Sale, error) {
	var saleID int

	query := r.repository.GoquDBWrapper.Insert("sales").
		Rows(goqu.Record{
			"item_id":       sale.ItemID,
			"item_name":     sale.ItemName,
			"quantity_sold": sale.QuantitySold,
			"selling_price": sale.SellingPrice,
			"total_revenue": sale.TotalRevenue,
			"sale_date":     sale.SaleDate,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&saleID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("sale", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert sale record: %w", err)
	}

	return r.GetSale(saleID)
}

func (r *SaleRepository) UpdateSale(sale models.Sale) error {
	query := r.repository.GoquDBWrapper.Update("sales").
		Set(goqu.Record{
			"item_name":     sale.ItemName,
			"quantity_sold": sale.QuantitySold,
			"selling_price": sale.SellingPrice,
			"total_revenue": sale.TotalRevenue,
			"sale_date":     sale.SaleDate,
		}).
		Where(goqu.Ex{"id": sale.ID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update sale record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sale %d not found", sale.ID)
	}

	return nil
}

func (r *SaleRepository) RemoveSale(id int) error {
	query := r.repository.GoquDBWrapper.Delete("sales").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete sale record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sale %d not found", id)
	}

	return nil
}
