package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/debug"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/parser"
	"github.com/streetsweeper/internal/source"
)

func newParser(debugOn bool) (*parser.Parser, error) {
	p, err := parser.NewDefault()
	if err != nil {
		return nil, err
	}
	if debugOn {
		p.SetLogger(debug.New(true, "parse"))
	}
	return p, nil
}

// createParseCmd parses addresses given as arguments, or one per line on stdin.
func createParseCmd(debugFlag *bool) *cobra.Command {
	var (
		shapeName string
		avoid     bool
		asJSON    bool
		part      string
	)

	cmd := &cobra.Command{
		Use:   "parse [address...]",
		Short: "Parse addresses from arguments or stdin",
		Long: `Parse each argument as one address. With no arguments, read one address per line from stdin.
Unmatched inputs are reported on stderr and make the command exit non-zero.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := parser.ShapeByName(shapeName)
			if err != nil {
				return err
			}
			p, err := newParser(*debugFlag)
			if err != nil {
				return err
			}

			inputs := args
			if len(inputs) == 0 {
				inputs, _, err = source.ReadLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			opts := normalize.Options{AvoidRedundantStreetType: avoid}
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)

			failed := 0
			for _, text := range inputs {
				a, err := p.ParseShape(text, shape, opts)
				if errors.Is(err, parser.ErrNoMatch) {
					fmt.Fprintf(cmd.ErrOrStderr(), "no match: %q\n", text)
					failed++
					continue
				}
				if err != nil {
					return err
				}

				if asJSON {
					if err := enc.Encode(a); err != nil {
						return fmt.Errorf("failed to encode %q: %w", text, err)
					}
					continue
				}
				line, err := render(a, part)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, line)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d addresses did not parse", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shapeName, "shape", "auto", "address shape: auto, standard, po, informal or intersection")
	cmd.Flags().BoolVar(&avoid, "avoid-redundant-street-type", false, "drop the street type when the street name already contains it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print each record as JSON")
	cmd.Flags().StringVar(&part, "part", "", "print only one part: line1, line2, street_address_1, street_address_2, city_state_zip or full")

	return cmd
}

func render(a address.Address, part string) (string, error) {
	if part == "" {
		return a.FullStreetAddress(), nil
	}
	return a.Format(part)
}
