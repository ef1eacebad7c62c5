package models

import "golang.org/x/exp/slices"

// Category is the fixed set of expense kinds.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryOther         Category = "other"
)

// Categories returns all valid categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTravel,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryOther,
	}
}

// Valid reports whether the category is a member of the enum.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}
