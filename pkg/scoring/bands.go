package scoring

import (
	"math"
	"strings"
)

type comparison int

const (
	lt comparison = iota
	le
	gt
	ge
)

// cut is one breakpoint of a piecewise lookup. Each protocol picks its own
// operator per breakpoint; clinical meaning depends on it.
type cut struct {
	op     comparison
	limit  float64
	points float64
}

func below(limit, points float64) cut   { return cut{op: lt, limit: limit, points: points} }
func atMost(limit, points float64) cut  { return cut{op: le, limit: limit, points: points} }
func above(limit, points float64) cut   { return cut{op: gt, limit: limit, points: points} }
func atLeast(limit, points float64) cut { return cut{op: ge, limit: limit, points: points} }

func (c cut) matches(v float64) bool {
	switch c.op {
	case lt:
		return v < c.limit
	case le:
		return v <= c.limit
	case gt:
		return v > c.limit
	case ge:
		return v >= c.limit
	}
	return false
}

// band returns the points of the first cut v matches, or fallback.
func band(v float64, cuts []cut, fallback float64) float64 {
	for _, c := range cuts {
		if c.matches(v) {
			return c.points
		}
	}
	return fallback
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// tally accumulates points and the breakdown of an additive protocol.
type tally struct {
	in    Inputs
	total float64
	parts []Contribution
}

func newTally(in Inputs) *tally { return &tally{in: in} }

func (t *tally) add(key, label string, points float64, detail string) {
	t.total += points
	t.parts = append(t.parts, Contribution{Key: key, Label: label, Points: points, Detail: detail})
}

// flags adds the configured points of every boolean field that is true.
func (t *tally) flags(ids ...string) {
	for _, id := range ids {
		if t.in.Bool(id) {
			t.add(id, t.in.label(id), t.in.points(id), "")
		}
	}
}

// choices adds the points of the selected option of every select field.
func (t *tally) choices(ids ...string) {
	for _, id := range ids {
		o := t.in.Option(id)
		t.add(id, t.in.label(id), o.Points, o.Label)
	}
}

func (t *tally) result(tier Tier, category, interpretation string) Result {
	return Result{
		Value:          Number(t.total),
		Tier:           tier,
		Category:       category,
		Interpretation: interpretation,
		Breakdown:      t.parts,
	}
}

// pending is the best-effort result returned while required fields are null.
func pending(in Inputs, missing []string) Result {
	labels := make([]string, 0, len(missing))
	for _, id := range missing {
		labels = append(labels, in.label(id))
	}
	return Result{
		Value:          Text("-"),
		Tier:           TierPending,
		Category:       "pending",
		Interpretation: "Select required fields: " + strings.Join(labels, ", "),
		Missing:        missing,
	}
}
