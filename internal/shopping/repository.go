package shopping

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"meal-planner/internal/apperr"
)

// Repository persists checked states, learned shop orderings and custom
// shopping items. It implements StateStore, OrderStore and CustomItemStore.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// GetCheckedStates returns the checked flag of every tracked item key.
func (r *Repository) GetCheckedStates(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_key, checked FROM shopping_item_states`)
	if err != nil {
		return nil, fmt.Errorf("failed to list item states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var key string
		var checked bool
		if err := rows.Scan(&key, &checked); err != nil {
			return nil, fmt.Errorf("failed to scan item state: %w", err)
		}
		states[key] = checked
	}
	return states, rows.Err()
}

// UpsertCheckedState creates or updates the checked flag for an item key.
func (r *Repository) UpsertCheckedState(ctx context.Context, itemKey string, checked bool) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_item_states (item_key, checked) VALUES (?, ?)
		 ON CONFLICT (item_key) DO UPDATE SET checked = excluded.checked`,
		itemKey, checked)
	if err != nil {
		return fmt.Errorf("failed to upsert item state: %w", err)
	}
	return nil
}

// GetOrders returns the learned ordering for one shop.
func (r *Repository) GetOrders(ctx context.Context, shopID int64) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_key, sort_order FROM shop_item_orders WHERE shop_id = ?`, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop orders: %w", err)
	}
	defer rows.Close()

	orders := make(map[string]int)
	for rows.Next() {
		var key string
		var order int
		if err := rows.Scan(&key, &order); err != nil {
			return nil, fmt.Errorf("failed to scan shop order: %w", err)
		}
		orders[key] = order
	}
	return orders, rows.Err()
}

// ReplaceOrders rewrites a shop's whole ordering table in one transaction.
// SQLite's single-writer model keeps competing learners serialized.
func (r *Repository) ReplaceOrders(ctx context.Context, shopID int64, orders map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shop_item_orders WHERE shop_id = ?`, shopID); err != nil {
		return fmt.Errorf("failed to clear shop orders: %w", err)
	}
	for key, order := range orders {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shop_item_orders (shop_id, item_key, sort_order) VALUES (?, ?, ?)`,
			shopID, key, order)
		if err != nil {
			return fmt.Errorf("failed to insert shop order: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shop orders: %w", err)
	}
	return nil
}

func scanNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ListCustomItems returns all custom items ordered by id.
func (r *Repository) ListCustomItems(ctx context.Context) ([]CustomItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, quantity, unit, checked FROM custom_shopping_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom items: %w", err)
	}
	defer rows.Close()

	var items []CustomItem
	for rows.Next() {
		var item CustomItem
		var category, quantity, unit sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &category, &quantity, &unit, &item.Checked); err != nil {
			return nil, fmt.Errorf("failed to scan custom item: %w", err)
		}
		item.Category = scanNullString(category)
		item.Unit = scanNullString(unit)
		if quantity.Valid {
			q, err := decimal.NewFromString(quantity.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse custom item quantity: %w", err)
			}
			item.Quantity = &q
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateCustomItem inserts a custom item and returns it with its id.
func (r *Repository) CreateCustomItem(ctx context.Context, item CustomItem) (*CustomItem, error) {
	var quantity *string
	if item.Quantity != nil {
		s := item.Quantity.String()
		quantity = &s
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO custom_shopping_items (name, category, quantity, unit, checked)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Category, quantity, item.Unit, item.Checked)
	if err != nil {
		return nil, fmt.Errorf("failed to insert custom item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read custom item id: %w", err)
	}
	item.ID = id
	return &item, nil
}

// SetCustomItemChecked updates the checked flag on a custom item record.
func (r *Repository) SetCustomItemChecked(ctx context.Context, id int64, checked bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE custom_shopping_items SET checked = ? WHERE id = ?`, checked, id)
	if err != nil {
		return fmt.Errorf("failed to update custom item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Custom item")
	}
	return nil
}

// DeleteCustomItem removes a custom item.
func (r *Repository) DeleteCustomItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete custom item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Custom item")
	}
	return nil
}
