package shopping

import (
	"context"
	"time"

	"meal-planner/internal/apperr"
	"meal-planner/internal/catalog"
	"meal-planner/internal/mealplan"
)

// CatalogStore provides the catalog records the shopping list depends on.
type CatalogStore interface {
	GetRecipe(ctx context.Context, id int64) (*catalog.Recipe, error)
	GetShop(ctx context.Context, id int64) (*catalog.Shop, error)
}

// MealPlanStore provides the scheduled meal plans.
type MealPlanStore interface {
	ListUntil(ctx context.Context, until mealplan.Date) ([]mealplan.MealPlan, error)
	LatestDate(ctx context.Context) (*mealplan.Date, error)
}

// StateStore persists checked flags for ingredient-derived items, keyed by
// encoded item key.
type StateStore interface {
	GetCheckedStates(ctx context.Context) (map[string]bool, error)
	UpsertCheckedState(ctx context.Context, itemKey string, checked bool) error
}

// OrderStore persists the learned per-shop item ordering. ReplaceOrders must
// apply the whole map in a single transaction.
type OrderStore interface {
	GetOrders(ctx context.Context, shopID int64) (map[string]int, error)
	ReplaceOrders(ctx context.Context, shopID int64, orders map[string]int) error
}

// CustomItemStore persists manually added shopping items.
type CustomItemStore interface {
	ListCustomItems(ctx context.Context) ([]CustomItem, error)
	CreateCustomItem(ctx context.Context, item CustomItem) (*CustomItem, error)
	SetCustomItemChecked(ctx context.Context, id int64, checked bool) error
	DeleteCustomItem(ctx context.Context, id int64) error
}

// Service builds consolidated shopping lists and maintains checked state and
// learned shop orderings.
type Service struct {
	catalog CatalogStore
	plans   MealPlanStore
	states  StateStore
	orders  OrderStore
	customs CustomItemStore

	// now supplies the fallback cutoff date when the system has no meal
	// plans; swappable so tests and future policy changes stay cheap.
	now func() time.Time
}

// NewService creates a Service over the given stores.
func NewService(catalogStore CatalogStore, planStore MealPlanStore, stateStore StateStore, orderStore OrderStore, customStore CustomItemStore) *Service {
	return &Service{
		catalog: catalogStore,
		plans:   planStore,
		states:  stateStore,
		orders:  orderStore,
		customs: customStore,
		now:     time.Now,
	}
}

// WithNow overrides the current-time source used for the default cutoff.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// BuildShoppingList aggregates meal plans up to until (defaulting to the
// latest planned date, or today when no plans exist), merges them with
// custom items and checked state, and sorts the result. When shopID is set
// the shop's learned ordering is applied; a missing shop fails with NotFound.
func (s *Service) BuildShoppingList(ctx context.Context, until *mealplan.Date, shopID *int64) (*List, error) {
	if shopID != nil {
		shop, err := s.catalog.GetShop(ctx, *shopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, apperr.NotFound("Shop")
		}
	}

	if until == nil {
		latest, err := s.plans.LatestDate(ctx)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			until = latest
		} else {
			today := mealplan.DateOf(s.now())
			until = &today
		}
	}

	plans, err := s.plans.ListUntil(ctx, *until)
	if err != nil {
		return nil, err
	}

	recipesByID := make(map[int64]*catalog.Recipe)
	for _, plan := range plans {
		if _, seen := recipesByID[plan.RecipeID]; seen {
			continue
		}
		recipe, err := s.catalog.GetRecipe(ctx, plan.RecipeID)
		if err != nil {
			return nil, err
		}
		// Missing recipes stay in the map as nil so Aggregate skips
		// their plans without re-fetching.
		recipesByID[plan.RecipeID] = recipe
	}

	aggregated := Aggregate(*until, plans, recipesByID)

	customItems, err := s.customs.ListCustomItems(ctx)
	if err != nil {
		return nil, err
	}
	checkedStates, err := s.states.GetCheckedStates(ctx)
	if err != nil {
		return nil, err
	}

	items := Reconcile(aggregated, customItems, checkedStates)

	orders := map[string]int{}
	if shopID != nil {
		orders, err = s.orders.GetOrders(ctx, *shopID)
		if err != nil {
			return nil, err
		}
	}
	SortItems(items, orders)

	return &List{UntilDate: *until, Items: items}, nil
}

// LearnOrder updates a shop's item ordering from an observed shopping
// sequence. The sequence must be non-empty and the shop must exist.
func (s *Service) LearnOrder(ctx context.Context, shopID int64, itemKeys []string) error {
	if len(itemKeys) == 0 {
		return apperr.InvalidArgument("itemKeys must not be empty")
	}
	shop, err := s.catalog.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return apperr.NotFound("Shop")
	}

	existing, err := s.orders.GetOrders(ctx, shopID)
	if err != nil {
		return err
	}
	return s.orders.ReplaceOrders(ctx, shopID, Relearn(itemKeys, existing))
}

// ToggleItem sets the checked flag for one item, routing by key kind:
// custom keys update the item record, ingredient keys upsert the shared
// state row. Malformed keys fail with InvalidArgument.
func (s *Service) ToggleItem(ctx context.Context, rawKey string, checked bool) error {
	key, err := ParseItemKey(rawKey)
	if err != nil {
		return err
	}
	switch key.Kind {
	case KindCustom:
		return s.customs.SetCustomItemChecked(ctx, key.ID, checked)
	default:
		return s.states.UpsertCheckedState(ctx, key.String(), checked)
	}
}

// AddCustomItem stores a manually added item, always starting unchecked.
func (s *Service) AddCustomItem(ctx context.Context, item CustomItem) (*ListItem, error) {
	item.Checked = false
	created, err := s.customs.CreateCustomItem(ctx, item)
	if err != nil {
		return nil, err
	}
	return &ListItem{
		Key:      CustomKey(created.ID),
		Name:     created.Name,
		Category: created.Category,
		Quantity: roundAmount(created.Quantity),
		Unit:     created.Unit,
		Checked:  created.Checked,
		Source:   SourceCustom,
	}, nil
}

// RemoveCustomItem deletes a manually added item.
func (s *Service) RemoveCustomItem(ctx context.Context, id int64) error {
	return s.customs.DeleteCustomItem(ctx, id)
}
