package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Command layer errors.
var (
	ErrArity          = errors.New("wrong number of arguments")
	ErrUnknownCommand = errors.New("unknown command")
)

// Fixed reply texts.
const (
	ReplyHello      = "How can I help you?"
	ReplyUnknown    = "Unknown command"
	ReplyGoodbye    = "Good bye!"
	ReplyEmptyBook  = "Address book is empty."
	ReplyNoUpcoming = "No upcoming birthdays this week."
)

// exitVerbs end the session.
var exitVerbs = map[string]bool{
	"exit":    true,
	"close":   true,
	"goodbye": true,
	"good":    true,
	"bye":     true,
}

// Reply is the outcome of one command line.
type Reply struct {
	Text string
	// Exit reports that the session should save and terminate.
	Exit bool
}

// Assistant executes commands against one address book.
type Assistant struct {
	book     *types.AddressBook
	now      func() time.Time
	commands map[string]*Command
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock sets the source of "today" for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New returns an Assistant operating on book.
func New(book *types.AddressBook, opts ...Option) *Assistant {
	a := &Assistant{
		book:     book,
		now:      time.Now,
		commands: make(map[string]*Command),
	}
	for _, c := range commandTable {
		a.commands[c.Verb] = c
		for _, alias := range c.Aliases {
			a.commands[alias] = c
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Book returns the address book the assistant operates on.
func (a *Assistant) Book() *types.AddressBook { return a.book }

// IsExit reports whether verb ends the session.
func IsExit(verb string) bool { return exitVerbs[verb] }

// Dispatch runs one parsed command line of a conversation. Exit verbs accept
// any arguments. Unknown verbs reply ReplyUnknown; every other failure is
// rendered by Render.
func (a *Assistant) Dispatch(verb string, args []string) Reply {
	if IsExit(verb) {
		return Reply{Text: ReplyGoodbye, Exit: true}
	}
	text, err := a.Execute(verb, args)
	if errors.Is(err, ErrUnknownCommand) {
		return Reply{Text: ReplyUnknown}
	}
	return Reply{Text: Render(text, err)}
}

// Execute runs the command named by verb. It returns ErrUnknownCommand when
// no command matches; exit verbs are not commands.
func (a *Assistant) Execute(verb string, args []string) (string, error) {
	verb, args = a.joinVerb(verb, args)
	c, ok := a.commands[verb]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
	}
	return a.Run(c, args)
}

// joinVerb folds the first argument into the verb when together they name a
// two-word command such as "show all".
func (a *Assistant) joinVerb(verb string, args []string) (string, []string) {
	if len(args) == 0 {
		return verb, args
	}
	if joined := verb + " " + strings.ToLower(args[0]); a.commands[joined] != nil {
		return joined, args[1:]
	}
	return verb, args
}

// Run checks the argument count of c and executes it.
func (a *Assistant) Run(c *Command, args []string) (string, error) {
	if len(args) != len(c.Args) {
		return "", fmt.Errorf("%w, usage: %s", ErrArity, c.UsageLine())
	}
	return c.run(a, args)
}

// Render turns a handler result into reply text. A non-nil err always wins
// and is shown as "Error: <message>".
func Render(text string, err error) string {
	if err != nil {
		return "Error: " + err.Error()
	}
	return text
}

// Lookup returns the command registered under verb or one of its aliases.
func (a *Assistant) Lookup(verb string) (*Command, bool) {
	c, ok := a.commands[verb]
	return c, ok
}

// Commands returns the command table in help order.
func Commands() []*Command {
	out := make([]*Command, len(commandTable))
	copy(out, commandTable)
	return out
}

// Command is one verb of the command surface.
type Command struct {
	Verb    string
	Aliases []string
	Args    []string // argument placeholders; the arity is len(Args)
	Short   string
	run     func(a *Assistant, args []string) (string, error)
}

// UsageLine returns "verb ARG...".
func (c *Command) UsageLine() string {
	return strings.Join(append([]string{c.Verb}, c.Args...), " ")
}

var commandTable = []*Command{
	{Verb: "hello", Short: "Greet the assistant", run: (*Assistant).hello},
	{Verb: "add", Args: []string{"NAME", "PHONE"}, Short: "Add a contact or a phone to an existing contact", run: (*Assistant).addContact},
	{Verb: "change", Aliases: []string{"edit"}, Args: []string{"NAME", "OLD_PHONE", "NEW_PHONE"}, Short: "Replace a contact's phone number", run: (*Assistant).changePhone},
	{Verb: "phone", Args: []string{"NAME"}, Short: "Show a contact's phone numbers", run: (*Assistant).showPhones},
	{Verb: "add-birthday", Args: []string{"NAME", "DD.MM.YYYY"}, Short: "Set a contact's birthday", run: (*Assistant).addBirthday},
	{Verb: "show-birthday", Args: []string{"NAME"}, Short: "Show a contact's birthday", run: (*Assistant).showBirthday},
	{Verb: "birthdays", Short: "List birthdays in the next seven days", run: (*Assistant).birthdays},
	{Verb: "show all", Aliases: []string{"all"}, Short: "List all contacts", run: (*Assistant).showAll},
}
