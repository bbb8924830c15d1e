// Package tags holds the loosely-typed metadata collected while scanning a
// media resource: a flat map of tag keys to tagged values, plus the derived
// scalars (uri, mtime, duration) the scanner attaches after collection.
package tags

import (
	"fmt"
	"time"
)

// Value is a collected tag value. Concrete types are String, Int, Date and
// Strings (multi-valued tags collapse to Strings).
type Value interface {
	value()
}

type String string

type Int int64

// Strings is an ordered multi-valued tag, e.g. several artists.
type Strings []string

// Date is a year/month/day triple as delivered by tag readers. It may be
// invalid (e.g. 0/0/0); callers decide whether to keep or drop it.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (String) value()  {}
func (Int) value()     {}
func (Strings) value() {}
func (Date) value()    {}

// Valid reports whether the triple denotes a real calendar date.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == time.Month(d.Month) && t.Day() == d.Day
}

// ISO renders the date as an ISO-8601 string (YYYY-MM-DD).
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
