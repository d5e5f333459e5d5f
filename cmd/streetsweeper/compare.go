package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streetsweeper/internal/libpostal"
	"github.com/streetsweeper/internal/normalize"
)

// createCompareCmd shows where libpostal disagrees with our parse.
func createCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [address]",
		Short: "Compare a parse against libpostal (needs -tags libpostal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]

			p, err := newParser(false)
			if err != nil {
				return err
			}
			ours, ok := p.Parse(text, normalize.Options{})
			if !ok {
				return fmt.Errorf("no match: %q", text)
			}

			comps, err := libpostal.Parse(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ours:      %s\n", ours.FullStreetAddress())
			for _, c := range comps {
				fmt.Fprintf(out, "libpostal: %-15s %s\n", c.Label, c.Value)
			}

			diffs := libpostal.Compare(p.Tables(), ours, comps)
			if len(diffs) == 0 {
				fmt.Fprintln(out, "No differences")
				return nil
			}
			for _, d := range diffs {
				fmt.Fprintf(out, "DIFF %-12s ours=%q libpostal=%q\n", d.Field, d.Ours, d.Theirs)
			}
			return nil
		},
	}
}
