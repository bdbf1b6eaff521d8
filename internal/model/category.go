// Package model defines the core domain models used throughout the application.
package model

// Direction indicates whether money flows in or out.
// Categories and transactions share the same two directions.
type Direction string

const (
	// DirectionIncome represents money received.
	DirectionIncome Direction = "income"
	// DirectionExpense represents money spent.
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(s)
	return d, d.Valid()
}

// Category groups transactions for reporting and budgeting.
type Category struct {
	Name  string    `json:"name" validate:"notblank"`
	Icon  string    `json:"icon"`
	Color string    `json:"color"`
	Type  Direction `json:"type" validate:"oneof=income expense"`
	ID    int64     `json:"id" validate:"required"`
}

// DefaultCategories returns the seed set used when no categories are persisted.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Salary", Icon: "fa-briefcase", Color: "#4a7c59", Type: DirectionIncome},
		{ID: 2, Name: "Bonus", Icon: "fa-gift", Color: "#2d5016", Type: DirectionIncome},
		{ID: 3, Name: "Food & Dining", Icon: "fa-utensils", Color: "#ff6b6b", Type: DirectionExpense},
		{ID: 4, Name: "Transportation", Icon: "fa-car", Color: "#ff922b", Type: DirectionExpense},
		{ID: 5, Name: "Housing", Icon: "fa-home", Color: "#ffd43b", Type: DirectionExpense},
		{ID: 6, Name: "Utilities", Icon: "fa-bolt", Color: "#a78bfa", Type: DirectionExpense},
		{ID: 7, Name: "Entertainment", Icon: "fa-gamepad", Color: "#ec4899", Type: DirectionExpense},
		{ID: 8, Name: "Health & Fitness", Icon: "fa-heartbeat", Color: "#14b8a6", Type: DirectionExpense},
		{ID: 9, Name: "Shopping", Icon: "fa-shopping-cart", Color: "#f87171", Type: DirectionExpense},
		{ID: 10, Name: "Education", Icon: "fa-book", Color: "#60a5fa", Type: DirectionExpense},
	}
}
