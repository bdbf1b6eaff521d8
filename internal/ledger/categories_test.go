package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/storage"
	"github.com/Veraticus/the-budget-must-balance/internal/testutil"
)

func TestKeywordClassifier(t *testing.T) {
	tests := []struct {
		name string
		want model.Direction
	}{
		{"Salary", model.DirectionIncome},
		{"annual BONUS", model.DirectionIncome},
		{"Salary Negotiation Course", model.DirectionIncome},
		{"Food", model.DirectionExpense},
		{"Freelance", model.DirectionExpense},
		{"", model.DirectionExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.KeywordClassifier(tt.name))
		})
	}
}

func TestCategoryRegistry_Create(t *testing.T) {
	ctx := context.Background()
	tr, _ := testutil.NewTracker(t)

	salary, err := tr.Categories.Create(ctx, ledger.CategoryInput{Name: "  Side Salary ", Icon: "fa-coins", Color: "#111"})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionIncome, salary.Type)
	assert.Equal(t, "Side Salary", salary.Name)

	food, err := tr.Categories.Create(ctx, ledger.CategoryInput{Name: "Food"})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionExpense, food.Type)

	cats := tr.Categories.List()
	require.Len(t, cats, 12)
	assert.Equal(t, salary, cats[10], "insertion order is kept")
	assert.Equal(t, food, cats[11])
}

func TestCategoryRegistry_CreateValidation(t *testing.T) {
	ctx := context.Background()
	tr, kv := testutil.NewTracker(t)

	_, err := tr.Categories.Create(ctx, ledger.CategoryInput{Name: "   "})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")

	_, err = tr.Categories.CreateWithType(ctx, ledger.CategoryInput{Name: "Gift"}, "transfer")
	require.ErrorIs(t, err, common.ErrValidation)

	assert.Len(t, tr.Categories.List(), 10)
	assert.Zero(t, kv.Writes())
}

func TestCategoryRegistry_CustomClassifier(t *testing.T) {
	ctx := context.Background()
	always := func(string) model.Direction { return model.DirectionIncome }
	tr, _ := testutil.NewTracker(t, ledger.WithClassifier(always))

	c, err := tr.Categories.Create(ctx, ledger.CategoryInput{Name: "Rent"})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionIncome, c.Type)

	explicit, err := tr.Categories.CreateWithType(ctx, ledger.CategoryInput{Name: "Salary"}, model.DirectionExpense)
	require.NoError(t, err)
	assert.Equal(t, model.DirectionExpense, explicit.Type)
}

func TestCategoryRegistry_UpdateKeepsType(t *testing.T) {
	ctx := context.Background()
	tr, _ := testutil.NewTracker(t)

	require.NoError(t, tr.Categories.Update(ctx, 3, ledger.CategoryInput{Name: "Salary Sacrifice", Icon: "fa-x", Color: "#fff"}))

	c, ok := tr.Categories.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Salary Sacrifice", c.Name)
	assert.Equal(t, "fa-x", c.Icon)
	assert.Equal(t, model.DirectionExpense, c.Type, "type is never recomputed")
}

func TestCategoryRegistry_MissingID(t *testing.T) {
	ctx := context.Background()
	tr, kv := testutil.NewTracker(t)

	err := tr.Categories.Update(ctx, 999, ledger.CategoryInput{Name: "Ghost"})
	require.ErrorIs(t, err, common.ErrNotFound)
	err = tr.Categories.Delete(ctx, 999)
	require.ErrorIs(t, err, common.ErrNotFound)

	assert.Equal(t, model.DefaultCategories(), tr.Categories.List())
	assert.Zero(t, kv.Writes())
}

func TestCategoryRegistry_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	tr, kv := testutil.NewTracker(t)
	testutil.MustAdd(t, tr, testutil.Expense(model.NewDate(2024, time.January, 5), 3, "20", "Dinner"))
	writes := kv.Writes()

	err := tr.Categories.Delete(ctx, 3)
	require.ErrorIs(t, err, common.ErrCategoryInUse)
	assert.Equal(t, "Cannot delete category with existing transactions", common.UserMessage(err))
	assert.Equal(t, model.DefaultCategories(), tr.Categories.List())
	assert.Equal(t, writes, kv.Writes())

	require.NoError(t, tr.Categories.Delete(ctx, 4))
	_, ok := tr.Categories.Get(4)
	assert.False(t, ok)
	assert.Len(t, tr.Categories.List(), 9)
}

func TestCategoryRegistry_KeepsLastCategory(t *testing.T) {
	kv := storage.NewMemoryStorage()
	kv.Prime(ledger.KeyCategories, []byte(`[{"id":1,"name":"Only","type":"expense"}]`))
	tr := testutil.OpenTracker(t, kv)

	err := tr.Categories.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ledger.ErrLastCategory)
	assert.Len(t, tr.Categories.List(), 1)
}

func TestCategoryRegistry_Resolve(t *testing.T) {
	tr, _ := testutil.NewTracker(t)

	assert.Equal(t, "Housing", tr.Categories.Resolve(5).Name)
	assert.Equal(t, "Salary", tr.Categories.Resolve(12345).Name, "dangling ids resolve to the first category")
}
