package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/domain"
	"github.com/phonebook/phonebook/internal/pkg/database"
	"github.com/phonebook/phonebook/internal/pkg/logger"
	pgrepo "github.com/phonebook/phonebook/internal/repository/postgres"
	"github.com/phonebook/phonebook/internal/service"
)

// Version is set at build time
var Version = "0.1.0"

// personStore is the part of the person service the CLI uses
type personStore interface {
	List(ctx context.Context) ([]domain.Person, error)
	Create(ctx context.Context, input domain.PersonInput) (*domain.Person, error)
}

// backend opens the store the commands operate on
type backend interface {
	OpenPersons(ctx context.Context, cfg *config.Config) (personStore, func(), error)
	Migrate(ctx context.Context, cfg *config.Config) error
}

type rootOptions struct {
	databaseURL string
	verbose     bool
}

func newRootCmd(b backend) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "phonebook",
		Short: "Phonebook CLI - manage phonebook entries from the terminal",
		Long: `Phonebook CLI talks to the phonebook database directly.

Commands:
  list     - Print every entry
  add      - Add an entry
  migrate  - Create the schema if it does not exist

Example:
  phonebook list
  phonebook add "Arto Vihavainen" 045-1232456
  phonebook --database-url postgres://localhost/phonebook migrate`,
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.Init(logger.Config{Level: "debug", Format: "console"})
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "Database connection string (or set DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newListCmd(b, opts))
	rootCmd.AddCommand(newAddCmd(b, opts))
	rootCmd.AddCommand(newMigrateCmd(b, opts))

	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.WithDatabaseURL(o.databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// postgresBackend runs commands against the configured Postgres database
type postgresBackend struct{}

func (postgresBackend) OpenPersons(ctx context.Context, cfg *config.Config) (personStore, func(), error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewPersonService(pgrepo.NewPersonRepository(db))
	return svc, db.Close, nil
}

func (postgresBackend) Migrate(ctx context.Context, cfg *config.Config) error {
	return database.EnsureSchema(ctx, cfg.Database.URL)
}

// logVerbose logs a message to stderr if verbose mode is enabled
func logVerbose(opts *rootOptions, format string, args ...any) {
	if opts.verbose {
		fmt.Fprintf(os.Stderr, "[phonebook] "+format+"\n", args...)
	}
}
