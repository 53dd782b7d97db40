package game

import (
	"cmp"
	"fmt"
	"slices"
)

type Score struct {
	ID     string
	Points int
}

type Standing struct {
	Rank   int
	ID     string
	Points int
}

// Standings orders scores best first. Equal scores are ordered by id so
// every observer computes the same table.
func Standings(scores []Score) []Standing {
	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b Score) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	out := make([]Standing, len(sorted))
	for i, s := range sorted {
		out[i] = Standing{Rank: i + 1, ID: s.ID, Points: s.Points}
	}
	return out
}

// Rank returns id's 1-based position among scores and the table size. An
// empty table reports 1 of 1; an id missing from a non-empty table ranks 0.
func Rank(scores []Score, id string) (rank, total int) {
	if len(scores) == 0 {
		return 1, 1
	}
	for _, s := range Standings(scores) {
		if s.ID == id {
			return s.Rank, len(scores)
		}
	}
	return 0, len(scores)
}

func RankLabel(rank, total int) string {
	return fmt.Sprintf("Rank: %d/%d", rank, total)
}
