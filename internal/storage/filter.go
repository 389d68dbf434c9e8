package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SortField is a whitelisted ORDER BY column.
type SortField string

const (
	SortByTitle       SortField = "title"
	SortByNumVisits   SortField = "num_visits"
	SortByLastVisited SortField = "last_visited_time"
)

// SortDirection is a whitelisted ORDER BY direction.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// namedRanges maps the relative time-range buckets to their length in days.
var namedRanges = map[string]int64{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

const secondsPerDay = 86400

// Predicate is one parameterized condition. Clause holds exactly
// len(Args) placeholders, in the same order.
type Predicate struct {
	Clause string
	Args   []any
}

// Order is a resolved ORDER BY directive.
type Order struct {
	Field     SortField
	Direction SortDirection
}

// Clause formats the order directive. url is appended as a tie-breaker so
// that consecutive pages never overlap.
func (o Order) Clause() string {
	return fmt.Sprintf("ORDER BY %s %s, url ASC", o.Field, o.Direction)
}

// Plan is a compiled filter: predicates in emission order plus the order.
type Plan struct {
	Predicates []Predicate
	Order      Order

	// Resolved time bounds, kept for callers that display them.
	Lower *int64
	Upper *int64
}

// Where returns " WHERE p1 AND p2 ..." or "" when there are no predicates.
func (p Plan) Where() string {
	if len(p.Predicates) == 0 {
		return ""
	}
	clauses := make([]string, len(p.Predicates))
	for i, pred := range p.Predicates {
		clauses[i] = pred.Clause
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

// Args returns the bound values of all predicates in emission order.
func (p Plan) Args() []any {
	args := []any{}
	for _, pred := range p.Predicates {
		args = append(args, pred.Args...)
	}
	return args
}

// Compile turns spec into a Plan relative to the current time.
func Compile(spec FilterSpec) Plan {
	return CompileAt(spec, time.Now())
}

// CompileAt turns spec into a Plan relative to now. It never fails:
// unrecognized sort tokens and time ranges degrade to their defaults.
func CompileAt(spec FilterSpec, now time.Time) Plan {
	plan := Plan{Order: resolveOrder(spec.SortBy, spec.SortOrder)}

	plan.Lower, plan.Upper = ResolveTimeRange(spec.TimeRange, now)
	if plan.Lower != nil {
		plan.Predicates = append(plan.Predicates, Predicate{
			Clause: "last_visited_time >= ?",
			Args:   []any{*plan.Lower},
		})
	}
	if plan.Upper != nil {
		plan.Predicates = append(plan.Predicates, Predicate{
			Clause: "last_visited_time <= ?",
			Args:   []any{*plan.Upper},
		})
	}

	if spec.Locale != "" {
		plan.Predicates = append(plan.Predicates, Predicate{
			Clause: "locale = ?",
			Args:   []any{spec.Locale},
		})
	}

	if spec.Keyword != "" {
		pattern := "%" + spec.Keyword + "%"
		plan.Predicates = append(plan.Predicates, Predicate{
			Clause: "(title LIKE ? OR url LIKE ?)",
			Args:   []any{pattern, pattern},
		})
	}

	return plan
}

// ResolveTimeRange converts a time-range token into optional epoch-second
// bounds. Named buckets (7d, 30d, 90d) set only a lower bound; "all" and ""
// set none. Any other token containing '-' is read as "<start>-<end>",
// split at the first '-', each side parsed on its own; a side that does not
// parse is left unbounded.
func ResolveTimeRange(raw string, now time.Time) (lower, upper *int64) {
	if raw == "" || raw == "all" {
		return nil, nil
	}

	if days, ok := namedRanges[raw]; ok {
		l := now.Unix() - days*secondsPerDay
		return &l, nil
	}

	dash := strings.IndexByte(raw, '-')
	if dash < 0 {
		return nil, nil
	}

	if v, err := strconv.ParseInt(raw[:dash], 10, 64); err == nil {
		lower = &v
	}
	if v, err := strconv.ParseInt(raw[dash+1:], 10, 64); err == nil {
		upper = &v
	}
	return lower, upper
}

func resolveOrder(sortBy, sortOrder string) Order {
	o := Order{Field: SortByLastVisited, Direction: SortDesc}

	switch SortField(sortBy) {
	case SortByTitle, SortByNumVisits, SortByLastVisited:
		o.Field = SortField(sortBy)
	}

	if sortOrder == "asc" {
		o.Direction = SortAsc
	}
	return o
}
