package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/config"
	dbpkg "github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/logging"
)

var Version = "dev"

// app carries what every subcommand shares. It is filled by the root
// command's pre-run hook.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "Maintenance commands for the shop API database",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			a.log = logging.New(a.cfg.LogLevel, a.cfg.LogFormat)

			if a.cfg.DBUrl == "" {
				return errors.New("DATABASE_URL is required")
			}

			db, err := dbpkg.Open(a.cfg, a.log)
			if err != nil {
				return err
			}
			a.db = db
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db == nil {
				return nil
			}
			return dbpkg.Close(a.db)
		},
	}

	rootCmd.AddCommand(createAdminCmd(a))
	rootCmd.AddCommand(seedCmd(a))
	rootCmd.AddCommand(migrateCmd(a))

	return rootCmd
}

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open already migrated; running again is harmless.
			if err := dbpkg.Migrate(a.db); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), []string{"driver", "status"}, [][]string{
				{a.cfg.DBDriver, "migrated"},
			})
		},
	}
}

func render(w io.Writer, header []string, rows [][]string) error {
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}

	table := tablewriter.NewWriter(w)
	table.Header(cols...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
