package types

import (
	"slices"
	"strings"
)

// NoBirthday is shown by BirthdayDisplay when a record has no birthday.
const NoBirthday = "No birthday set"

// Record is one contact: a name, an ordered list of phone numbers and an
// optional birthday. Phone numbers are compared by exact string equality and
// duplicates are kept.
type Record struct {
	name     ContactName
	phones   []PhoneNumber
	birthday *BirthdayDate
}

// NewRecord creates an empty record. Returns ErrEmptyName for an empty name.
func NewRecord(name string) (*Record, error) {
	n, err := NewContactName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() ContactName { return r.name }

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []PhoneNumber {
	out := make([]PhoneNumber, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (BirthdayDate, bool) {
	if r.birthday == nil {
		return BirthdayDate{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to raw.
// Returns ErrPhoneNotFound if there is none.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexPhone(raw)
	if i < 0 {
		return ErrPhoneNotFound
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw. The record is left untouched when
// oldRaw is absent (ErrPhoneNotFound) or newRaw is invalid (ErrInvalidPhone).
// The new number is appended before the old one is removed.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	if r.indexPhone(oldRaw) < 0 {
		return ErrPhoneNotFound
	}
	if err := r.AddPhone(newRaw); err != nil {
		return err
	}
	return r.RemovePhone(oldRaw)
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (PhoneNumber, bool) {
	i := r.indexPhone(raw)
	if i < 0 {
		return PhoneNumber{}, false
	}
	return r.phones[i], true
}

func (r *Record) indexPhone(raw string) int {
	for i, p := range r.phones {
		if p.value == raw {
			return i
		}
	}
	return -1
}

// SetBirthday validates raw and overwrites any existing birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthdayDate(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// BirthdayDisplay returns the birthday as entered, or NoBirthday.
func (r *Record) BirthdayDisplay() string {
	if r.birthday == nil {
		return NoBirthday
	}
	return r.birthday.String()
}

// PhonesDisplay returns the phone numbers joined by "; ".
func (r *Record) PhonesDisplay() string {
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

// String renders the record as
// "Contact name: NAME, phones: P1; P2[, birthday: DD.MM.YYYY]".
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.String())
	sb.WriteString(", phones: ")
	sb.WriteString(r.PhonesDisplay())
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}
