package main

import (
	"log/slog"

	"github.com/loganlanou/schemainspect/service"
	"github.com/loganlanou/schemainspect/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "schemainspect",
		Short: "Print the columns and declared types of one SQLite table",
		Long: "schemainspect opens a SQLite database file, checks that it answers a\n" +
			"trivial query and prints the column names and declared types of a table.\n" +
			"Flags override the DB_PATH, TABLE_NAME, DB_DRIVER and DB_READ_ONLY\n" +
			"environment variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := service.LoadConfig(v)
			if err != nil {
				slog.Error("failed to load configuration", "error", err)
				return err
			}

			// Failures are reported on stdout by the inspector and do not
			// change the exit status.
			res := service.New(config, cmd.OutOrStdout()).Run(cmd.Context())
			if res.Err != nil {
				slog.Debug("inspection failed", "state", res.State.String(), "error", res.Err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("db", service.DefaultDBPath, "path to the SQLite database file")
	flags.String("table", service.DefaultTableName, "table to inspect")
	flags.String("driver", storage.DriverModernc, `SQLite driver, "sqlite" (modernc) or "sqlite3" (mattn)`)
	flags.Bool("read-only", false, "open the database read-only and never create it")

	_ = v.BindPFlag(service.KeyDBPath, flags.Lookup("db"))
	_ = v.BindPFlag(service.KeyTableName, flags.Lookup("table"))
	_ = v.BindPFlag(service.KeyDBDriver, flags.Lookup("driver"))
	_ = v.BindPFlag(service.KeyDBReadOnly, flags.Lookup("read-only"))

	return cmd
}
