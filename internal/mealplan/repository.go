package mealplan

import (
	"context"
	"database/sql"
	"fmt"

	"meal-planner/internal/apperr"
)

// Repository is a database-backed store for meal plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

func scanPlan(scanner interface{ Scan(...any) error }, withNames bool) (MealPlan, error) {
	var plan MealPlan
	var rawDate string
	var err error
	if withNames {
		err = scanner.Scan(&plan.ID, &rawDate, &plan.MealTypeID, &plan.RecipeID,
			&plan.PeopleCount, &plan.MealTypeName, &plan.RecipeName)
	} else {
		err = scanner.Scan(&plan.ID, &rawDate, &plan.MealTypeID, &plan.RecipeID, &plan.PeopleCount)
	}
	if err != nil {
		return MealPlan{}, err
	}
	plan.Date, err = ParseDate(rawDate)
	if err != nil {
		return MealPlan{}, fmt.Errorf("failed to parse meal plan date: %w", err)
	}
	return plan, nil
}

// List returns all meal plans with resolved meal type and recipe names.
func (r *Repository) List(ctx context.Context) ([]MealPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.date, p.meal_type_id, p.recipe_id, p.people_count, mt.name, rec.name
		 FROM meal_plans p
		 JOIN meal_types mt ON mt.id = p.meal_type_id
		 JOIN recipes rec ON rec.id = p.recipe_id
		 ORDER BY p.date, p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		plan, err := scanPlan(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// ListUntil returns all meal plans with date <= until.
func (r *Repository) ListUntil(ctx context.Context, until Date) ([]MealPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, meal_type_id, recipe_id, people_count
		 FROM meal_plans WHERE date <= ? ORDER BY date, id`, until.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans until %s: %w", until, err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		plan, err := scanPlan(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// LatestDate returns the most recent meal plan date, or nil when there are
// no plans at all.
func (r *Repository) LatestDate(ctx context.Context) (*Date, error) {
	var rawDate string
	err := r.db.QueryRowContext(ctx, `SELECT date FROM meal_plans ORDER BY date DESC LIMIT 1`).
		Scan(&rawDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest meal plan date: %w", err)
	}
	d, err := ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latest meal plan date: %w", err)
	}
	return &d, nil
}

// Create inserts a meal plan after validating its references.
func (r *Repository) Create(ctx context.Context, plan MealPlan) (*MealPlan, error) {
	if plan.PeopleCount <= 0 {
		return nil, apperr.InvalidArgument("peopleCount must be positive")
	}

	var mealTypeName string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM meal_types WHERE id = ?`, plan.MealTypeID).
		Scan(&mealTypeName)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Meal type")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check meal type: %w", err)
	}

	var recipeName string
	err = r.db.QueryRowContext(ctx, `SELECT name FROM recipes WHERE id = ?`, plan.RecipeID).
		Scan(&recipeName)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Recipe")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check recipe: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (date, meal_type_id, recipe_id, people_count) VALUES (?, ?, ?, ?)`,
		plan.Date.String(), plan.MealTypeID, plan.RecipeID, plan.PeopleCount)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read meal plan id: %w", err)
	}

	plan.ID = id
	plan.MealTypeName = mealTypeName
	plan.RecipeName = recipeName
	return &plan, nil
}

// UpdatePeopleCount changes the planned serving count of a meal plan.
func (r *Repository) UpdatePeopleCount(ctx context.Context, id int64, peopleCount int) (*MealPlan, error) {
	if peopleCount <= 0 {
		return nil, apperr.InvalidArgument("peopleCount must be positive")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE meal_plans SET people_count = ? WHERE id = ?`, peopleCount, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Meal plan")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.date, p.meal_type_id, p.recipe_id, p.people_count, mt.name, rec.name
		 FROM meal_plans p
		 JOIN meal_types mt ON mt.id = p.meal_type_id
		 JOIN recipes rec ON rec.id = p.recipe_id
		 WHERE p.id = ?`, id)
	plan, err := scanPlan(row, true)
	if err != nil {
		return nil, fmt.Errorf("failed to reload meal plan: %w", err)
	}
	return &plan, nil
}

// Delete removes a meal plan.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Meal plan")
	}
	return nil
}
