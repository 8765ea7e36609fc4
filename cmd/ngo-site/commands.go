package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/repository/markdown"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/ngo-site/internal/app"
	"github.com/vadimbarashkov/ngo-site/internal/config"
	"github.com/vadimbarashkov/ngo-site/internal/usecase"

	pgdb "github.com/vadimbarashkov/ngo-site/pkg/postgres"
)

const configPathEnv = "CONFIG_PATH"

type rootOptions struct {
	configPath string
}

func (o *rootOptions) load() (*config.Config, error) {
	if o.configPath == "" {
		return nil, fmt.Errorf("config path is empty: pass --config or set %s", configPathEnv)
	}
	return config.Load(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ngo-site",
		Short:         "Backend for the organisation website",
		Long:          "ngo-site serves site content, short links, the project board, events and the contact and newsletter forms.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv(configPathEnv), "path to the YAML config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newLinksCmd(opts),
		newContentCmd(opts),
	)

	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), cfg)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := pgdb.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := pgdb.RollbackMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN(), steps); err != nil {
				return err
			}
			cmd.Printf("rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			status, err := pgdb.MigrationVersion(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN())
			if err != nil {
				return err
			}
			cmd.Println(status)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)

	return cmd
}

func newLinksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Manage short links",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <short-code>",
		Short: "Delete a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			db, err := app.OpenDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			uc := usecase.NewURLUseCase(postgres.NewURLRepository(db), cfg.ShortCodeLength)
			if err := uc.DeactivateURL(cmd.Context(), args[0]); err != nil {
				return err
			}

			cmd.Printf("short link %s deleted\n", args[0])
			return nil
		},
	})

	return cmd
}

func newContentCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the markdown content tree",
	}

	var (
		dir    string
		drafts bool
	)

	check := &cobra.Command{
		Use:   "check",
		Short: "Load every markdown file and report front-matter or slug problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				cfg, err := opts.load()
				if err != nil {
					return err
				}
				dir = cfg.Content.Dir
				drafts = drafts || cfg.Content.IncludeDrafts
			}

			ix, err := markdown.Load(dir, drafts)
			if err != nil {
				return err
			}

			for _, c := range ix.Collections() {
				cmd.Printf("%-20s %d\n", c.Name, c.Count)
			}
			cmd.Printf("%s\n%d posts ok\n", strings.Repeat("-", 24), ix.Len())

			return nil
		},
	}
	check.Flags().StringVar(&dir, "dir", "", "content directory (defaults to content.dir from the config)")
	check.Flags().BoolVar(&drafts, "drafts", false, "include drafts")

	cmd.AddCommand(check)

	return cmd
}
