package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"meal-planner/internal/apperr"
)

// maxRecipeIngredients caps the ingredient lines per recipe.
const maxRecipeIngredients = 10

// Repository is a database-backed store for the catalog entities
// (ingredients, recipes, meal types and shops).
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Ingredients ---

// ListIngredients returns all ingredients ordered by name.
func (r *Repository) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// GetIngredient retrieves an ingredient by ID. Returns (nil, nil) when absent.
func (r *Repository) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category FROM ingredients WHERE id = ?`, id,
	).Scan(&ing.ID, &ing.Name, &ing.Category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ing, nil
}

// CreateIngredient inserts a new ingredient. Duplicate names yield a Conflict.
func (r *Repository) CreateIngredient(ctx context.Context, name, category string) (*Ingredient, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ingredients (name, category) VALUES (?, ?)`, name, category)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Ingredient name must be unique")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read ingredient id: %w", err)
	}
	return &Ingredient{ID: id, Name: name, Category: category}, nil
}

// UpdateIngredient updates an existing ingredient.
func (r *Repository) UpdateIngredient(ctx context.Context, id int64, name, category string) (*Ingredient, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ingredients SET name = ?, category = ? WHERE id = ?`, name, category, id)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Ingredient name must be unique")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Ingredient")
	}
	return &Ingredient{ID: id, Name: name, Category: category}, nil
}

// DeleteIngredient removes an ingredient; recipe lines cascade.
func (r *Repository) DeleteIngredient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Ingredient")
	}
	return nil
}

// --- Recipes ---

func validateRecipe(rec *Recipe) error {
	if rec.PeopleAmount <= 0 {
		return apperr.InvalidArgument("peopleAmount must be positive")
	}
	if len(rec.Ingredients) > maxRecipeIngredients {
		return apperr.InvalidArgument(fmt.Sprintf("Recipes can have at most %d ingredients", maxRecipeIngredients))
	}
	seen := make(map[int64]struct{}, len(rec.Ingredients))
	for _, line := range rec.Ingredients {
		if _, dup := seen[line.IngredientID]; dup {
			return apperr.InvalidArgument("Recipe ingredients must be unique")
		}
		seen[line.IngredientID] = struct{}{}
	}
	return nil
}

func (r *Repository) ingredientsExist(ctx context.Context, tx *sql.Tx, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var count int
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT id) FROM ingredients WHERE id IN (%s)`, placeholders)
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return count == len(ids), nil
}

func (r *Repository) insertRecipeLines(ctx context.Context, tx *sql.Tx, recipeID int64, lines []RecipeIngredient) error {
	for _, line := range lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit, sort_order)
			 VALUES (?, ?, ?, ?, ?)`,
			recipeID, line.IngredientID, line.Amount.String(), line.Unit, line.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// CreateRecipe inserts a recipe with its ingredient lines in one transaction.
func (r *Repository) CreateRecipe(ctx context.Context, rec Recipe) (*Recipe, error) {
	if err := validateRecipe(&rec); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, len(rec.Ingredients))
	for i, line := range rec.Ingredients {
		ids[i] = line.IngredientID
	}
	ok, err := r.ingredientsExist(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidArgument("One or more ingredients do not exist")
	}

	stepsJSON, err := json.Marshal(rec.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe steps: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (name, description, people_amount, steps) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Description, rec.PeopleAmount, string(stepsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}
	recipeID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe id: %w", err)
	}

	if err := r.insertRecipeLines(ctx, tx, recipeID, rec.Ingredients); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	return r.GetRecipe(ctx, recipeID)
}

// UpdateRecipe replaces a recipe's fields and ingredient lines.
func (r *Repository) UpdateRecipe(ctx context.Context, id int64, rec Recipe) (*Recipe, error) {
	if err := validateRecipe(&rec); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, len(rec.Ingredients))
	for i, line := range rec.Ingredients {
		ids[i] = line.IngredientID
	}
	ok, err := r.ingredientsExist(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidArgument("One or more ingredients do not exist")
	}

	stepsJSON, err := json.Marshal(rec.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe steps: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE recipes SET name = ?, description = ?, people_amount = ?, steps = ? WHERE id = ?`,
		rec.Name, rec.Description, rec.PeopleAmount, string(stepsJSON), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Recipe")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}
	if err := r.insertRecipeLines(ctx, tx, id, rec.Ingredients); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	return r.GetRecipe(ctx, id)
}

// GetRecipe retrieves a recipe with its resolved ingredient lines.
// Returns (nil, nil) when absent.
func (r *Repository) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	var stepsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, people_amount, steps FROM recipes WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Description, &rec.PeopleAmount, &stepsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if err := json.Unmarshal([]byte(stepsJSON), &rec.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe steps: %w", err)
	}

	lines, err := r.recipeLines(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = lines
	return &rec, nil
}

func (r *Repository) recipeLines(ctx context.Context, recipeID int64) ([]RecipeIngredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ri.ingredient_id, ri.amount, ri.unit, ri.sort_order, i.name, i.category
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ?
		 ORDER BY ri.sort_order`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var lines []RecipeIngredient
	for rows.Next() {
		var line RecipeIngredient
		if err := rows.Scan(&line.IngredientID, &line.Amount, &line.Unit, &line.SortOrder,
			&line.IngredientName, &line.IngredientCategory); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ListRecipes returns all recipes ordered by name, lines resolved.
func (r *Repository) ListRecipes(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, people_amount, steps FROM recipes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var rec Recipe
		var stepsJSON string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.PeopleAmount, &stepsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		if err := json.Unmarshal([]byte(stepsJSON), &rec.Steps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe steps: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		lines, err := r.recipeLines(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = lines
	}
	return recipes, nil
}

// DeleteRecipe removes a recipe; its lines cascade.
func (r *Repository) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Recipe")
	}
	return nil
}

// --- Meal types ---

// ListMealTypes returns all meal types ordered by name.
func (r *Repository) ListMealTypes(ctx context.Context) ([]MealType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM meal_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal types: %w", err)
	}
	defer rows.Close()

	var mealTypes []MealType
	for rows.Next() {
		var mt MealType
		if err := rows.Scan(&mt.ID, &mt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan meal type: %w", err)
		}
		mealTypes = append(mealTypes, mt)
	}
	return mealTypes, rows.Err()
}

// GetMealType retrieves a meal type by ID. Returns (nil, nil) when absent.
func (r *Repository) GetMealType(ctx context.Context, id int64) (*MealType, error) {
	var mt MealType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM meal_types WHERE id = ?`, id).
		Scan(&mt.ID, &mt.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal type: %w", err)
	}
	return &mt, nil
}

// CreateMealType inserts a new meal type.
func (r *Repository) CreateMealType(ctx context.Context, name string) (*MealType, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO meal_types (name) VALUES (?)`, name)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Meal type name must be unique")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read meal type id: %w", err)
	}
	return &MealType{ID: id, Name: name}, nil
}

// UpdateMealType renames a meal type.
func (r *Repository) UpdateMealType(ctx context.Context, id int64, name string) (*MealType, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE meal_types SET name = ? WHERE id = ?`, name, id)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Meal type name must be unique")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update meal type: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Meal type")
	}
	return &MealType{ID: id, Name: name}, nil
}

// DeleteMealType removes a meal type; its meal plans cascade.
func (r *Repository) DeleteMealType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal type: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Meal type")
	}
	return nil
}

// --- Shops ---

// ListShops returns all shops ordered by name.
func (r *Repository) ListShops(ctx context.Context) ([]Shop, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM shops ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	var shops []Shop
	for rows.Next() {
		var shop Shop
		if err := rows.Scan(&shop.ID, &shop.Name); err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

// GetShop retrieves a shop by ID. Returns (nil, nil) when absent.
func (r *Repository) GetShop(ctx context.Context, id int64) (*Shop, error) {
	var shop Shop
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM shops WHERE id = ?`, id).
		Scan(&shop.ID, &shop.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return &shop, nil
}

// CreateShop inserts a new shop.
func (r *Repository) CreateShop(ctx context.Context, name string) (*Shop, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO shops (name) VALUES (?)`, name)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Shop name must be unique")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert shop: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read shop id: %w", err)
	}
	return &Shop{ID: id, Name: name}, nil
}

// DeleteShop removes a shop; its learned item orders cascade.
func (r *Repository) DeleteShop(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Shop")
	}
	return nil
}
