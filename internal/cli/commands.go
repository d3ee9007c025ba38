package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/assistant"
)

// newVerbCmd exposes one command of the assistant as a one-shot subcommand:
// load, run the verb, print the reply, save.
func newVerbCmd(a *app, c *assistant.Command) *cobra.Command {
	return &cobra.Command{
		Use:     c.UsageLine(),
		Short:   c.Short,
		Aliases: c.Aliases,
		// Arity is checked by the assistant so the reply matches the
		// interactive session.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, args)
		},
	}
}

func (a *app) runOnce(cmd *cobra.Command, args []string) error {
	s := a.openSession()

	text, err := s.bot.Execute(cmd.CalledAs(), args)
	fmt.Fprintln(cmd.OutOrStdout(), assistant.Render(text, err))

	if closeErr := s.close(); closeErr != nil {
		return closeErr
	}
	if err != nil {
		return &exitError{code: exitUserError}
	}
	return nil
}
