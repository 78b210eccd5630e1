package model

// CategoryType indicates whether a category classifies income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category is a transaction classification bucket. A nil OwnerID marks a
// system default visible to every user; otherwise the category is private
// to its owner.
type Category struct {
	Name    string
	Icon    string
	Type    CategoryType
	OwnerID *int64
	ID      int64
}

// IsDefault reports whether the category is a system default.
func (c *Category) IsDefault() bool {
	return c.OwnerID == nil
}

// Subcategory refines a category. It always belongs to exactly one
// category and follows the same ownership rule as Category.
type Subcategory struct {
	Name       string
	OwnerID    *int64
	CategoryID int64
	ID         int64
}
