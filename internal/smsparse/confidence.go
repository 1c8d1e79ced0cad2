package smsparse

import "github.com/amitksingh0880/spend-wise-sub000/internal/model"

// Confidence weights. The score is a heuristic completeness measure, not a
// probability: each resolved field adds its weight, capped at 1.0.
const (
	weightAmount   = 0.4
	weightVendor   = 0.3
	weightCategory = 0.2
	weightType     = 0.1
)

// Score combines extraction completeness into a single confidence value in
// [0,1]. vendor is the raw extraction result (empty when unresolved, before
// the "Unknown" default is applied); typeKnown is true once classification
// ran.
func Score(amount float64, vendor, category string, typeKnown bool) float64 {
	var score float64
	if amount > 0 {
		score += weightAmount
	}
	if len(vendor) > 2 {
		score += weightVendor
	}
	if category != "" && category != model.CategoryOther {
		score += weightCategory
	}
	if typeKnown {
		score += weightType
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
