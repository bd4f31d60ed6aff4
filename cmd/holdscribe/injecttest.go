package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaz8081/holdscribe/internal/inject"
)

// newInjectTestCmd types or pastes text into whichever window has focus
// after a short countdown.
func newInjectTestCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "inject-test [text]",
		Short: "Inject test text into the focused application",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := "Hallo von holdscribe!"
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}

			inj := inject.New(method)
			if inj == nil {
				return fmt.Errorf("inject method must be \"type\" or \"paste\", got %q", method)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Will inject %q using %q method in 3 seconds...\n", text, method)
			fmt.Fprintln(out, "Focus a text editor now!")
			for i := 3; i > 0; i-- {
				fmt.Fprintf(out, "%d...\n", i)
				time.Sleep(time.Second)
			}

			if err := inj.Inject(text); err != nil {
				return err
			}
			fmt.Fprintln(out, "Done!")
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "type", "inject method: type or paste")
	return cmd
}
