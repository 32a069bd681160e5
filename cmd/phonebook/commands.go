package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phonebook/phonebook/internal/domain"
)

func newListCmd(b backend, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			store, closeFn, err := b.OpenPersons(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			people, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			logVerbose(opts, "found %d entries", len(people))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "phonebook:")
			for _, p := range people {
				fmt.Fprintf(out, "%s %s\n", p.Name, p.Number)
			}
			return nil
		},
	}
}

func newAddCmd(b backend, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME [NUMBER]",
		Short: "Add an entry",
		Example: `  phonebook add "Ada Lovelace" 39-44-5323523
  phonebook add "Dan Abramov"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.PersonInput{Name: args[0]}
			if len(args) == 2 {
				input.Number = args[1]
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			store, closeFn, err := b.OpenPersons(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			person, err := store.Create(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s number %s to phonebook\n", person.Name, person.Number)
			return nil
		},
	}
}

func newMigrateCmd(b backend, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if err := b.Migrate(cmd.Context(), cfg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
