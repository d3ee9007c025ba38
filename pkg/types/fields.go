package types

import (
	"regexp"
	"time"
)

// BirthdayLayout is the time layout of a BirthdayDate (DD.MM.YYYY).
const BirthdayLayout = "02.01.2006"

// Field is a contact value that renders back to its original text.
type Field interface {
	String() string
}

var (
	_ Field = ContactName("")
	_ Field = PhoneNumber{}
	_ Field = BirthdayDate{}
)

// ContactName is the unique key of a contact. It carries no format rules
// beyond being non-empty.
type ContactName string

// NewContactName returns ErrEmptyName for an empty raw value.
func NewContactName(raw string) (ContactName, error) {
	if raw == "" {
		return "", ErrEmptyName
	}
	return ContactName(raw), nil
}

func (n ContactName) String() string { return string(n) }

// PhoneNumber is a string of exactly ten decimal digits.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates raw and returns ErrInvalidPhone unless it is
// exactly ten ASCII digits.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if len(raw) != 10 {
		return PhoneNumber{}, ErrInvalidPhone
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return PhoneNumber{}, ErrInvalidPhone
		}
	}
	return PhoneNumber{value: raw}, nil
}

func (p PhoneNumber) String() string { return p.value }

// birthdayPattern pins the zero-padded shape that time.Parse alone would
// not enforce on the year.
var birthdayPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// BirthdayDate is a calendar date written as DD.MM.YYYY.
type BirthdayDate struct {
	value string
	date  time.Time
}

// NewBirthdayDate validates raw and returns ErrInvalidBirthday unless it is a
// real calendar date in DD.MM.YYYY form.
func NewBirthdayDate(raw string) (BirthdayDate, error) {
	if !birthdayPattern.MatchString(raw) {
		return BirthdayDate{}, ErrInvalidBirthday
	}
	date, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return BirthdayDate{}, ErrInvalidBirthday
	}
	return BirthdayDate{value: raw, date: date}, nil
}

func (b BirthdayDate) String() string { return b.value }

// Date returns the parsed date at midnight UTC.
func (b BirthdayDate) Date() time.Time { return b.date }
