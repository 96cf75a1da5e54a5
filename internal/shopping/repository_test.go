package shopping

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"meal-planner/internal/apperr"
	"meal-planner/internal/catalog"
	"meal-planner/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.SQL
}

func TestCheckedStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	states, err := repo.GetCheckedStates(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(states) != 0 {
		t.Errorf("Expected empty state table, got %v", states)
	}

	if err := repo.UpsertCheckedState(ctx, "ingredient:7", true); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}
	// Same key again flips the flag in place.
	if err := repo.UpsertCheckedState(ctx, "ingredient:7", false); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if err := repo.UpsertCheckedState(ctx, "custom:2", true); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}

	states, err = repo.GetCheckedStates(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(states) != 2 || states["ingredient:7"] || !states["custom:2"] {
		t.Errorf("Unexpected states: %v", states)
	}
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)
	shop, err := catalog.NewRepository(db).CreateShop(ctx, "Fresh Mart")
	if err != nil {
		t.Fatalf("Expected shop creation to succeed, got %v", err)
	}

	orders, err := repo.GetOrders(ctx, shop.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders for a fresh shop, got %v", orders)
	}

	first := map[string]int{"ingredient:1": 1, "ingredient:2": 2}
	if err := repo.ReplaceOrders(ctx, shop.ID, first); err != nil {
		t.Fatalf("Expected replace to succeed, got %v", err)
	}
	// A second replace fully rewrites the table, no leftovers.
	second := map[string]int{"custom:5": 1, "ingredient:1": 2}
	if err := repo.ReplaceOrders(ctx, shop.ID, second); err != nil {
		t.Fatalf("Expected replace to succeed, got %v", err)
	}

	orders, err = repo.GetOrders(ctx, shop.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(orders) != 2 || orders["custom:5"] != 1 || orders["ingredient:1"] != 2 {
		t.Errorf("Expected second ordering to fully replace the first, got %v", orders)
	}

	// Deleting the shop cascades to its learned orders.
	if err := catalog.NewRepository(db).DeleteShop(ctx, shop.ID); err != nil {
		t.Fatalf("Expected shop deletion to succeed, got %v", err)
	}
	orders, err = repo.GetOrders(ctx, shop.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected orders to cascade with the shop, got %v", orders)
	}
}

func TestCustomItemRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	household := "Household"
	unit := "pcs"
	qty := dec(t, "2.5")
	created, err := repo.CreateCustomItem(ctx, CustomItem{
		Name: "Sponges", Category: &household, Quantity: &qty, Unit: &unit,
	})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected a generated id")
	}

	bare, err := repo.CreateCustomItem(ctx, CustomItem{Name: "Batteries"})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	if err := repo.SetCustomItemChecked(ctx, created.ID, true); err != nil {
		t.Fatalf("Expected check to succeed, got %v", err)
	}
	if err := repo.SetCustomItemChecked(ctx, 999, true); !apperr.IsNotFound(err) {
		t.Errorf("Expected NotFound for unknown id, got %v", err)
	}

	items, err := repo.ListCustomItems(ctx)
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	sponges := items[0]
	if !sponges.Checked {
		t.Error("Expected checked flag to persist")
	}
	if sponges.Quantity == nil || !sponges.Quantity.Equal(qty) {
		t.Errorf("Expected quantity 2.5, got %v", sponges.Quantity)
	}
	if sponges.Category == nil || *sponges.Category != household {
		t.Errorf("Expected category %q, got %v", household, sponges.Category)
	}
	batteries := items[1]
	if batteries.Quantity != nil || batteries.Category != nil || batteries.Unit != nil {
		t.Errorf("Expected nullable fields to stay nil, got %+v", batteries)
	}

	if err := repo.DeleteCustomItem(ctx, bare.ID); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
	if err := repo.DeleteCustomItem(ctx, bare.ID); !apperr.IsNotFound(err) {
		t.Errorf("Expected NotFound on double delete, got %v", err)
	}
}
