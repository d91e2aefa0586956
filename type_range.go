package folioperf

import (
	"fmt"
	"iter"
	"strings"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains returns true if date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns an iterator that yields each date within the range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Weekdays returns an iterator that yields each Monday-to-Friday date within
// the range, inclusive. Market holidays are not modeled; they show up as
// missing price points, not as skipped days.
func (r Range) Weekdays() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !d.IsWeekday() {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// RangeKey is the caller-facing vocabulary for standard reporting ranges.
type RangeKey string

const (
	Range7D  RangeKey = "7D"
	Range1M  RangeKey = "1M"
	Range3M  RangeKey = "3M"
	Range6M  RangeKey = "6M"
	Range1Y  RangeKey = "1Y"
	RangeYTD RangeKey = "YTD"
	RangeMax RangeKey = "MAX"
)

// ParseRangeKey parses a case-insensitive range key.
func ParseRangeKey(s string) (RangeKey, error) {
	switch RangeKey(strings.ToUpper(strings.TrimSpace(s))) {
	case Range7D:
		return Range7D, nil
	case Range1M:
		return Range1M, nil
	case Range3M:
		return Range3M, nil
	case Range6M:
		return Range6M, nil
	case Range1Y:
		return Range1Y, nil
	case RangeYTD:
		return RangeYTD, nil
	case RangeMax:
		return RangeMax, nil
	default:
		return "", fmt.Errorf("unknown range key %q", s)
	}
}

// Resolve turns the key into a concrete range ending today. 'earliest' is the
// date of the first transaction, used only by MAX (which starts one day
// before it, so the opening purchase is visible in the series).
func (k RangeKey) Resolve(today, earliest Date) Range {
	switch k {
	case Range7D:
		return Range{From: today.Add(-7), To: today}
	case Range1M:
		return Range{From: today.AddMonth(-1), To: today}
	case Range3M:
		return Range{From: today.AddMonth(-3), To: today}
	case Range6M:
		return Range{From: today.AddMonth(-6), To: today}
	case Range1Y:
		return Range{From: today.Add(-365), To: today}
	case RangeYTD:
		return Range{From: today.StartOfYear(), To: today}
	case RangeMax:
		if earliest.IsZero() {
			return Range{From: today, To: today}
		}
		return Range{From: earliest.Add(-1), To: today}
	default:
		return Range{From: today, To: today}
	}
}
