// Package planner computes the target sheet order of a workbook.
package planner

import (
	"sort"

	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/models"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/order"
)

// rankedSheet pairs a sheet name with its rank in the order list.
type rankedSheet struct {
	name string
	rank int
}

// Plan returns the target sequence for current given the canonical ranks.
// Ranked sheets come first in ascending rank order; unranked sheets follow in
// their original relative order. The result is deterministic and idempotent.
func Plan(current []string, ranks order.RankMap) models.ReorderPlan {
	if len(current) == 1 {
		return unchanged(current, models.ReasonSingleSheet)
	}

	ranked, unranked := partition(current, ranks)
	if len(ranked) == 0 {
		return unchanged(current, models.ReasonNoRankedSheets)
	}

	// Ranks are unique, so the stable sort never has to break a tie.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank < ranked[j].rank
	})

	target := make([]string, 0, len(current))
	for _, s := range ranked {
		target = append(target, s.name)
	}
	target = append(target, unranked...)

	if equal(target, current) {
		return unchanged(current, models.ReasonAlreadyOrdered)
	}
	return models.ReorderPlan{
		TargetOrder: target,
		Changed:     true,
	}
}

// partition splits names into ranked and unranked sheets, keeping input order in both.
func partition(names []string, ranks order.RankMap) ([]rankedSheet, []string) {
	var ranked []rankedSheet
	var unranked []string
	for _, name := range names {
		if r, ok := ranks.Rank(name); ok {
			ranked = append(ranked, rankedSheet{name: name, rank: r})
		} else {
			unranked = append(unranked, name)
		}
	}
	return ranked, unranked
}

func unchanged(current []string, reason models.SkipReason) models.ReorderPlan {
	return models.ReorderPlan{
		TargetOrder: append([]string(nil), current...),
		Changed:     false,
		Reason:      reason,
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
