package smsparse

import (
	"strings"

	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// CategoryKeywords maps a category tag to its trigger keywords.
type CategoryKeywords struct {
	Name     string
	Keywords []string
}

// categoryTable is the fixed category mapping. Order matters: the first
// category with any keyword present in the vendor or body wins, so the
// table is a slice rather than a map.
var categoryTable = []CategoryKeywords{
	{"food", []string{
		"restaurant", "cafe", "pizza", "burger", "swiggy", "zomato",
		"dominos", "mcdonald", "kfc", "dining", "food",
	}},
	{"transportation", []string{
		"uber", "ola", "rapido", "metro", "irctc", "petrol", "diesel",
		"fuel", "parking", "toll", "cab",
	}},
	{"shopping", []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho", "mall", "store",
		"shopping",
	}},
	{"entertainment", []string{
		"netflix", "spotify", "hotstar", "bookmyshow", "movie", "cinema",
		"game",
	}},
	{"utilities", []string{
		"electricity", "broadband", "wifi", "postpaid", "prepaid",
		"recharge", "dth", "water bill", "gas bill",
	}},
	{"healthcare", []string{
		"hospital", "pharmacy", "clinic", "doctor", "apollo", "medplus",
		"diagnostic", "medical",
	}},
	{"education", []string{
		"school", "college", "university", "course", "udemy", "coursera",
		"tuition", "exam fee",
	}},
	{"groceries", []string{
		"bigbasket", "blinkit", "zepto", "dmart", "grofers", "grocery",
		"supermarket", "kirana",
	}},
}

// Categorize maps the extracted vendor (may be empty) and raw body to a
// category tag via case-insensitive keyword lookup, returning
// model.CategoryOther when nothing matches.
func Categorize(vendor, body string) string {
	haystack := strings.ToLower(vendor) + " " + strings.ToLower(body)
	for _, entry := range categoryTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(haystack, kw) {
				return entry.Name
			}
		}
	}
	return model.CategoryOther
}

// Categories returns the fixed category table in match order. The result
// is a copy; callers may not mutate the live table.
func Categories() []CategoryKeywords {
	out := make([]CategoryKeywords, len(categoryTable))
	for i, entry := range categoryTable {
		kws := make([]string, len(entry.Keywords))
		copy(kws, entry.Keywords)
		out[i] = CategoryKeywords{Name: entry.Name, Keywords: kws}
	}
	return out
}
