package inventory

import (
	"fmt"

	"storefront/internal/repository"
	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type InventoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *InventoryRepository {
	return &InventoryRepository{
		repository: r,
	}
}

func (r *InventoryRepository) getItemQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("inventory").As("i")).
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.name").As("name"),
			goqu.I("i.category").As("category"),
			goqu.I("i.description").As("description"),
			goqu.I("i.cost_price").As("cost_price"),
			goqu.I("i.selling_price").As("selling_price"),
			goqu.I("i.quantity").As("quantity"),
			goqu.I("i.image_url").As("image_url"),
			goqu.I("i.has_variants").As("has_variants"),
			goqu.I("i.base_item_id").As("base_item_id"),
			goqu.I("i.created_at").As("created_at"),
			goqu.I("i.updated_at").As("updated_at"),
		)
}

// GetItems returns every row, parents and variants alike, oldest first.
func (r *InventoryRepository) GetItems() (*[]models.InventoryItem, error) {
	query := r.getItemQuery().
		Order(goqu.I("i.created_at").Asc(), goqu.I("i.id").Asc())

	var items []models.InventoryItem
	err := query.Executor().ScanStructs(&items)

	if err != nil {
		return nil, fmt.Errorf("unable to select inventory from database: %s", err.Error())
	}

	return &items, nil
}

func (r *InventoryRepository) GetItem(id int) (*models.InventoryItem, error) {
	query := r.getItemQuery().Where(goqu.Ex{"i.id": id})

	var item models.InventoryItem
	found, err := query.Executor().ScanStruct(&item)

	if err != nil {
		return nil, fmt.Errorf("unable to select inventory item: %s", err.Error())
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

func (r *InventoryRepository) GetVariants(parentID int) (*[]models.InventoryItem, error) {
	query := r.getItemQuery().
		Where(goqu.Ex{"i.base_item_id": parentID}).
		Order(goqu.I("i.created_at").Asc(), goqu.I("i.id").Asc())

	var variants []models.InventoryItem
	err := query.Executor().ScanStructs(&variants)

	if err != nil {
		return nil, fmt.Errorf("unable to select variants: %s", err.Error())
	}

	return &variants, nil
}

func (r *InventoryRepository) CountVariants(parentID int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		From("inventory").
		Select(goqu.COUNT("id")).
		Where(goqu.Ex{"base_item_id": parentID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count variants: %w", err)
	}

	return count, nil
}

func (r *InventoryRepository) PersistItem(itemRequest models.ItemRequest) (*models.InventoryItem, error) {
	var itemID int

	record := goqu.Record{
		"name":          itemRequest.Name,
		"category":      itemRequest.Category,
		"description":   itemRequest.Description,
		"cost_price":    itemRequest.CostPrice,
		"selling_price": itemRequest.SellingPrice,
		"quantity":      itemRequest.Quantity,
		"has_variants":  itemRequest.HasVariants,
	}

	if itemRequest.ImageURL != nil {
		record["image_url"] = *itemRequest.ImageURL
	}

	query := r.repository.GoquDBWrapper.Insert("inventory").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&itemID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("inventory item", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert inventory record: %w", err)
	}

	return r.GetItem(itemID)
}

// PersistVariant inserts one variant row under the parent. Category and cost
// price come from the parent; the description is the parent's with the variant
// name appended.
func (r *InventoryRepository) PersistVariant(parent *models.InventoryItem, req models.VariantRequest) (*models.InventoryItem, error) {
	var variantID int

	record := goqu.Record{
		"name":          req.Name,
		"category":      parent.Category,
		"description":   parent.Description + " - " + req.Name,
		"cost_price":    parent.CostPrice,
		"selling_price": req.SellingPrice,
		"quantity":      req.Quantity,
		"has_variants":  false,
		"base_item_id":  parent.ID,
	}

	if req.ImageURL != nil {
		record["image_url"] = *req.ImageURL
	}

	query := r.repository.GoquDBWrapper.Insert("inventory").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&variantID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("inventory variant", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert variant record: %w", err)
	}

	return r.GetItem(variantID)
}

func (r *InventoryRepository) UpdateItem(id int, changes models.ItemChanges) error {
	record := goqu.Record{
		"updated_at": goqu.L("NOW()"),
	}

	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.Category != nil {
		record["category"] = *changes.Category
	}
	if changes.Description != nil {
		record["description"] = *changes.Description
	}
	if changes.CostPrice != nil {
		record["cost_price"] = *changes.CostPrice
	}
	if changes.SellingPrice != nil {
		record["selling_price"] = *changes.SellingPrice
	}
	if changes.Quantity != nil {
		record["quantity"] = *changes.Quantity
	}
	if changes.ImageURL != nil {
		record["image_url"] = *changes.ImageURL
	}

	query := r.repository.GoquDBWrapper.Update("inventory").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("inventory item %d not found", id)
	}

	return nil
}

// RemoveItem deletes one row. The base_item_id foreign key is RESTRICT, so a
// parent with live variants comes back as a ForeignKeyViolationError.
func (r *InventoryRepository) RemoveItem(id int) error {
	query := r.repository.GoquDBWrapper.Delete("inventory").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("inventory item", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("inventory item %d not found", id)
	}

	return nil
}
