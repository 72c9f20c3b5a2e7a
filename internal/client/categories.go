package client

// Category is one of the suggested transaction categories.
type Category struct {
	ID   string
	Name string
	Icon string
}

// DefaultIcon is shown for categories outside the suggestion list.
const DefaultIcon = "pricetag-outline"

// Categories is the fixed suggestion list offered when creating a
// transaction. The server accepts any non-blank category.
var Categories = []Category{
	{ID: "food", Name: "Food & Drinks", Icon: "fast-food"},
	{ID: "shopping", Name: "Shopping", Icon: "cart"},
	{ID: "transportation", Name: "Transportation", Icon: "car"},
	{ID: "entertainment", Name: "Entertainment", Icon: "film"},
	{ID: "bills", Name: "Bills", Icon: "receipt"},
	{ID: "income", Name: "Income", Icon: "cash"},
	{ID: "other", Name: "Other", Icon: "ellipsis-horizontal"},
}

// CategoryIcon returns the icon for a category name.
func CategoryIcon(name string) string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Icon
		}
	}
	return DefaultIcon
}

// LookupCategory resolves a category by id or display name.
func LookupCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == key || c.Name == key {
			return c, true
		}
	}
	return Category{}, false
}
