package assistant

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func (a *Assistant) hello(_ []string) (string, error) {
	return ReplyHello, nil
}

// addContact validates the phone before creating anything, so a rejected
// number never leaves an empty contact behind.
func (a *Assistant) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]
	if _, err := types.NewPhoneNumber(phone); err != nil {
		return "", err
	}

	r, ok := a.book.Find(name)
	if !ok {
		var err error
		if r, err = types.NewRecord(name); err != nil {
			return "", err
		}
		a.book.AddRecord(r)
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}

	if !ok {
		return "Contact added: " + r.String(), nil
	}
	return "Contact updated: " + r.String(), nil
}

func (a *Assistant) changePhone(args []string) (string, error) {
	r, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone updated for %s.", r.Name()), nil
}

func (a *Assistant) showPhones(args []string) (string, error) {
	r, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if len(r.Phones()) == 0 {
		return fmt.Sprintf("%s has no phone numbers.", r.Name()), nil
	}
	return fmt.Sprintf("%s: %s", r.Name(), r.PhonesDisplay()), nil
}

func (a *Assistant) addBirthday(args []string) (string, error) {
	r, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday added for %s.", r.Name()), nil
}

func (a *Assistant) showBirthday(args []string) (string, error) {
	r, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := r.Birthday(); !ok {
		return fmt.Sprintf("%s: %s.", r.Name(), r.BirthdayDisplay()), nil
	}
	return fmt.Sprintf("%s's birthday is %s.", r.Name(), r.BirthdayDisplay()), nil
}

func (a *Assistant) birthdays(_ []string) (string, error) {
	upcoming := a.book.UpcomingBirthdays(a.now())
	if len(upcoming) == 0 {
		return ReplyNoUpcoming, nil
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", u.Name, u.Date)
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) showAll(_ []string) (string, error) {
	if a.book.Len() == 0 {
		return ReplyEmptyBook, nil
	}
	return a.book.String(), nil
}

func (a *Assistant) find(name string) (*types.Record, error) {
	r, ok := a.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrContactNotFound, name)
	}
	return r, nil
}
