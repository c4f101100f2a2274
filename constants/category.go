package constants

import (
	"strings"
)

// Category groups document types for filing and review.
type Category string

const (
	CategoryLoan      Category = "loan"
	CategoryLegal     Category = "legal"
	CategoryFinancial Category = "financial"
	CategoryProperty  Category = "property"
	CategoryMisc      Category = "misc"
)

var allCategories = []Category{
	CategoryLoan,
	CategoryLegal,
	CategoryFinancial,
	CategoryProperty,
	CategoryMisc,
}

func CategoriesAsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// ParseCategory maps free text onto a known category. Unknown input maps to misc.
func ParseCategory(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return CategoryMisc, false
	}
	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return CategoryMisc, false
}
