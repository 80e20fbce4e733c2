// Package view derives what the user currently sees from registry snapshots.
package view

import "strings"

// Tab is the active dashboard tab.
type Tab string

const (
	TabSubmit Tab = "submit"
	TabIdeas  Tab = "ideas"
)

// DisplayMode selects between compact and detailed cards.
type DisplayMode string

const (
	DisplaySummary DisplayMode = "summary"
	DisplayFull    DisplayMode = "full"
)

// ParseDisplayMode resolves a configured mode, defaulting to summary.
func ParseDisplayMode(raw string) (DisplayMode, bool) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(raw))) {
	case DisplayFull:
		return DisplayFull, true
	case DisplaySummary, "short", "":
		return DisplaySummary, true
	default:
		return DisplaySummary, false
	}
}

// SortOrder selects how cards are ordered.
type SortOrder string

const (
	SortNewest      SortOrder = "newest"
	SortScore       SortOrder = "score"
	SortInnovation  SortOrder = "innovation"
	SortFeasibility SortOrder = "feasibility"
)

// SortOrders lists the orders in cycling sequence.
func SortOrders() []SortOrder {
	return []SortOrder{SortNewest, SortScore, SortInnovation, SortFeasibility}
}

// ParseSortOrder resolves a configured order, defaulting to newest.
func ParseSortOrder(raw string) (SortOrder, bool) {
	trimmed := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == "" {
		return SortNewest, true
	}
	for _, order := range SortOrders() {
		if order == trimmed {
			return order, true
		}
	}
	return SortNewest, false
}

// Next returns the order that follows s in the cycle.
func (s SortOrder) Next() SortOrder {
	orders := SortOrders()
	for i, order := range orders {
		if order == s {
			return orders[(i+1)%len(orders)]
		}
	}
	return SortNewest
}

// Tier buckets a score for colouring.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// TierFor maps a score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 8:
		return TierHigh
	case score >= 6:
		return TierMedium
	default:
		return TierLow
	}
}
