package types

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// upcomingWindowDays is how far ahead UpcomingBirthdays looks, inclusive.
const upcomingWindowDays = 7

// AddressBook is an insertion-ordered collection of records keyed by contact
// name. Each logical operation holds the book's lock, so a book may be shared
// between goroutines; records returned by Find are not themselves guarded.
type AddressBook struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*Record
}

// UpcomingBirthday is one entry of the birthday reminder list. Date is the
// day to congratulate on, formatted as DD.MM.YYYY.
type UpcomingBirthday struct {
	Name ContactName
	Date string
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record already stored under that name
// is replaced in place and keeps its position.
func (b *AddressBook) AddRecord(r *Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := r.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Deleting an absent name is a
// no-op.
func (b *AddressBook) Delete(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// UpcomingBirthdays lists contacts whose next birthday falls within the next
// seven days of today, inclusive. The window is measured against the real
// occurrence; a birthday landing on a weekend is then reported on the
// following Monday. Entries follow the book's insertion order.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []UpcomingBirthday {
	b.mu.RLock()
	defer b.mu.RUnlock()

	day := truncateDay(today)
	var upcoming []UpcomingBirthday
	for _, key := range b.order {
		r := b.records[key]
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		born, err := time.Parse(BirthdayLayout, bd.String())
		if err != nil {
			continue
		}

		next := occurrence(born, day.Year())
		if next.Before(day) {
			next = occurrence(born, day.Year()+1)
		}

		daysDiff := int(next.Sub(day).Hours() / 24)
		if daysDiff < 0 || daysDiff > upcomingWindowDays {
			continue
		}

		switch next.Weekday() {
		case time.Saturday:
			next = next.AddDate(0, 0, 2)
		case time.Sunday:
			next = next.AddDate(0, 0, 1)
		}

		upcoming = append(upcoming, UpcomingBirthday{
			Name: r.Name(),
			Date: next.Format(BirthdayLayout),
		})
	}
	return upcoming
}

// String renders every record on its own line in insertion order. An empty
// book renders as "".
func (b *AddressBook) String() string {
	records := b.Records()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// truncateDay drops the clock and zone from t, keeping its calendar date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// occurrence places born's month and day in year. A 29 February birthday is
// observed on 28 February in common years.
func occurrence(born time.Time, year int) time.Time {
	month, day := born.Month(), born.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
