package records

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeLayout is the wall-clock format accepted for range bounds.
const TimeLayout = "2006-01-02 15:04:05"

// Bound is one end of a record range. A bound parsed from an integer
// compares against Seq, a bound parsed from a timestamp string compares
// against Time. The zero Bound imposes no restriction.
type Bound struct {
	seq    int
	ts     time.Time
	isTime bool
	set    bool
}

// ParseBound interprets s as either a plain integer sequence number or a
// "YYYY-MM-DD HH:MM:SS" timestamp. An empty string is an unset bound.
func ParseBound(s string) (Bound, error) {
	if s == "" {
		return Bound{}, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Bound{seq: n, set: true}, nil
	}
	ts, err := time.Parse(TimeLayout, s)
	if err != nil {
		return Bound{}, fmt.Errorf("bound %q is neither a sequence number nor a %q timestamp", s, TimeLayout)
	}
	return Bound{ts: ts, isTime: true, set: true}, nil
}

// IsSet reports whether the bound restricts anything.
func (b Bound) IsSet() bool { return b.set }

// allows reports whether r lies inside the bound. A timestamp bound can
// never be satisfied by a record without a timestamp.
func (b Bound) allows(r Record, upper bool) bool {
	if !b.set {
		return true
	}
	if b.isTime {
		if r.Time == nil {
			return false
		}
		if upper {
			return !r.Time.After(b.ts)
		}
		return !r.Time.Before(b.ts)
	}
	if upper {
		return r.Seq <= b.seq
	}
	return r.Seq >= b.seq
}

// Filter narrows a record sequence by start/end bounds and a device name
// pattern. The result is the intersection of all supplied constraints;
// unset fields impose none, so the zero Filter is the identity.
type Filter struct {
	Start  Bound
	End    Bound
	Device string
}

// Apply returns the records satisfying every supplied constraint. Device is
// compiled as a regular expression and matched unanchored, so plain device
// names behave as prefix/substring patterns rather than exact names.
func (f Filter) Apply(recs []Record) ([]Record, error) {
	var devRe *regexp.Regexp
	if f.Device != "" {
		re, err := regexp.Compile(f.Device)
		if err != nil {
			return nil, fmt.Errorf("device pattern %q: %w", f.Device, err)
		}
		devRe = re
	}
	var out []Record
	for _, r := range recs {
		if devRe != nil && !devRe.MatchString(r.Device) {
			continue
		}
		if !f.Start.allows(r, false) || !f.End.allows(r, true) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
