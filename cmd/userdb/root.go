/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomoncle/userdb"
	"github.com/tomoncle/userdb/config"
	"github.com/tomoncle/userdb/database"
	_ "github.com/tomoncle/userdb/model"
	"github.com/tomoncle/userdb/utils"
)

// app carries what every subcommand needs once the root pre-run has loaded
// the configuration.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	format userdb.OutputFormat
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "userdb",
		Short:         "Run one-shot seed, playground and lookup scripts against the users database",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine.
			_ = godotenv.Load()

			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(a.v, configFile)
			if err != nil {
				return err
			}
			format, err := userdb.ParseOutputFormat(cfg.Output)
			if err != nil {
				return err
			}
			utils.ConfigureConsoleLogFormat(cfg.Log.Format)
			utils.ConfigureLogLevel(cfg.Log.Level)
			a.cfg, a.format = cfg, format
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("driver", "", `database driver ("sqlite", "postgres" or "mysql")`)
	flags.String("host", "", "database host")
	flags.Int("port", 0, "database port")
	flags.String("user", "", "database user")
	flags.String("password", "", "database password")
	flags.String("dbname", "", "database name, or SQLite file name without .db")
	flags.Bool("verbose", false, "log every query the client issues")
	flags.Bool("migrate", false, "create missing tables before running")
	flags.String("output", "", `result encoding ("json" or "yaml")`)
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	bindings := map[string]string{
		"database.type":      "driver",
		"database.host":      "host",
		"database.port":      "port",
		"database.username":  "user",
		"database.password":  "password",
		"database.dbname":    "dbname",
		"database.query_log": "verbose",
		"database.migrate":   "migrate",
		"output":             "output",
		"log.level":          "log-level",
	}
	for key, flag := range bindings {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		a.scriptCommand("seed", "Delete all users and create the seed user with its preference", userdb.SeedScript),
		a.scriptCommand("playground", "Open a query-logging client and run no queries", userdb.PlaygroundScript),
		a.lookupCommand(),
		a.migrateCommand(),
	)
	return rootCmd
}

func (a *app) scriptCommand(use, short string, script func() userdb.Script) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), script())
		},
	}
}

func (a *app) lookupCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Print the first user with the given name, or null",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), userdb.LookupScript(name))
		},
	}
	cmd.Flags().StringVar(&name, "name", userdb.SeedName, "name to match exactly")
	return cmd
}

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and user_preferences tables if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.ConfigLoader()
			cfg.DataMigrateConfig.EnableMigrateOnStartup = false
			manager, err := database.Open(cmd.Context(), cfg, database.WithQueryLogWriter(cmd.ErrOrStderr()))
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}
			defer func() { _ = manager.Disconnect() }()
			if err := manager.RunMigrations(cmd.Context()); err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}
}

// run builds the client for script, runs it and reports the outcome. Script
// failures are reported on stderr and do not fail the command.
func (a *app) run(ctx context.Context, stdout, stderr io.Writer, script userdb.Script) error {
	cfg := a.cfg.ConfigLoader()
	script.Configure(cfg)

	manager, err := database.Open(ctx, cfg, database.WithQueryLogWriter(stderr))
	if err != nil {
		return reportError(stderr, err)
	}

	result := userdb.Run(ctx, userdb.NewClient(manager), script)
	if err := userdb.Report(result, stdout, stderr, a.format); err != nil {
		return fmt.Errorf("failed to report %s result: %w", script.Name, err)
	}
	return nil
}

func reportError(stderr io.Writer, err error) error {
	return userdb.Report(userdb.Result{Failure: userdb.NewFailure(err)}, nil, stderr, userdb.OutputJSON)
}
