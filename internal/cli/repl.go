package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/assistant"
)

const (
	banner = "Welcome to the assistant bot!"
	prompt = "Enter a command: "
)

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
}

// runREPL reads command lines until an exit verb or end of input, then saves
// the address book.
func (a *app) runREPL(cmd *cobra.Command) error {
	s := a.openSession()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, banner)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}

		verb, args := assistant.ParseInput(scanner.Text())
		if verb == "" {
			continue
		}

		reply := s.bot.Dispatch(verb, args)
		fmt.Fprintln(out, reply.Text)
		if reply.Exit {
			return s.close()
		}
	}

	// End of input ends the session like an exit verb.
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		a.logger.Warn("reading input", "error", err)
	}
	fmt.Fprintln(out, assistant.ReplyGoodbye)
	return s.close()
}
