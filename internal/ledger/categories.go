package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

// ErrLastCategory is returned when deleting would leave the registry empty.
var ErrLastCategory = errors.New("cannot delete the last category")

// CategoryClassifier decides the direction of a newly created category.
type CategoryClassifier func(name string) model.Direction

var incomeKeywords = []string{"salary", "bonus"}

// KeywordClassifier marks a category as income when its name mentions salary
// or bonus, ignoring case. Everything else is an expense.
func KeywordClassifier(name string) model.Direction {
	lower := strings.ToLower(name)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return model.DirectionIncome
		}
	}
	return model.DirectionExpense
}

// CategoryInput carries the user-editable fields of a category.
type CategoryInput struct {
	Name  string `json:"name" validate:"notblank"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryRegistry manages the category collection.
type CategoryRegistry struct {
	store     *Store
	validator *validation.Validator
	classify  CategoryClassifier
}

// Create adds a category whose direction comes from the registry's classifier.
func (r *CategoryRegistry) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	return r.CreateWithType(ctx, in, r.classify(in.Name))
}

// CreateWithType adds a category with an explicit direction.
func (r *CategoryRegistry) CreateWithType(ctx context.Context, in CategoryInput, typ model.Direction) (model.Category, error) {
	if err := r.validator.Struct(in); err != nil {
		return model.Category{}, err
	}
	if !typ.Valid() {
		return model.Category{}, fmt.Errorf("%w: type must be one of [income expense]", common.ErrValidation)
	}

	c := model.Category{
		ID:    r.store.nextID(),
		Name:  strings.TrimSpace(in.Name),
		Icon:  in.Icon,
		Color: in.Color,
		Type:  typ,
	}
	r.store.categories = append(r.store.categories, c)

	slog.Debug("created category", "id", c.ID, "name", c.Name, "type", c.Type)
	return c, r.store.persist(ctx, "failed to save category")
}

// Update replaces the name, icon and color. The direction is kept.
func (r *CategoryRegistry) Update(ctx context.Context, id int64, in CategoryInput) error {
	if err := r.validator.Struct(in); err != nil {
		return err
	}

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}

	c := &r.store.categories[i]
	c.Name = strings.TrimSpace(in.Name)
	c.Icon = in.Icon
	c.Color = in.Color

	slog.Debug("updated category", "id", id)
	return r.store.persist(ctx, "failed to save category")
}

// Delete removes a category that no transaction references.
func (r *CategoryRegistry) Delete(ctx context.Context, id int64) error {
	for _, t := range r.store.transactions {
		if t.CategoryID == id {
			return fmt.Errorf("category %d: %w", id, common.ErrCategoryInUse)
		}
	}

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if len(r.store.categories) == 1 {
		return common.NewUserError("At least one category is required", ErrLastCategory)
	}

	r.store.categories = append(r.store.categories[:i], r.store.categories[i+1:]...)

	slog.Debug("deleted category", "id", id)
	return r.store.persist(ctx, "failed to save categories")
}

// List returns every category in insertion order.
func (r *CategoryRegistry) List() []model.Category {
	return r.store.Categories()
}

// Get returns the category with id.
func (r *CategoryRegistry) Get(id int64) (model.Category, bool) {
	if i := r.index(id); i >= 0 {
		return r.store.categories[i], true
	}
	return model.Category{}, false
}

// Resolve returns the category with id, falling back to the first category
// for dangling references.
func (r *CategoryRegistry) Resolve(id int64) model.Category {
	if c, ok := r.Get(id); ok {
		return c
	}
	return r.store.categories[0]
}

func (r *CategoryRegistry) index(id int64) int {
	for i, c := range r.store.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
