package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/logger"
)

// app carries state shared by the sub-commands once the root pre-run has loaded it.
type app struct {
	v   *viper.Viper
	cfg *config.Configuration
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	var envFile string

	root := &cobra.Command{
		Use:          "harness",
		Short:        "Test orchestration harness for the Events Management application",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.LoadEnvFile(envFile)
			if err != nil {
				return err
			}

			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			l, err := logger.Init(cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = l

			zap.S().Named("harness").Debugw("configuration loaded",
				"command", cmd.Name(), "env_file", envFile, "env_file_loaded", loaded, "config", cfg.DebugMap())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("log-level", "debug", "log level")
	flags.String("api-base-url", "http://localhost:5500", "base URL of the API under test")
	flags.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	flags.String("mongo-database", "events_test", "MongoDB database cleaned between tests")
	flags.String("project-root", ".", "directory the test command runs in")
	flags.Bool("ui-automation", false, "drive a real browser for ui runs instead of the stub")
	mustBind(a.v, flags, map[string]string{
		"log-format":          "log-format",
		"log-level":           "log-level",
		"api.base-url":        "api-base-url",
		"mongo.uri":           "mongo-uri",
		"mongo.database":      "mongo-database",
		"runner.project-root": "project-root",
		"browser.automation":  "ui-automation",
	})

	root.AddCommand(
		newServeCmd(a),
		newRunCmd(a),
		newCleanCmd(a),
		newWaitCmd(a),
	)
	return root
}

// mustBind binds configuration keys to flags. Unchanged flags leave the key to env and defaults.
func mustBind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			panic(fmt.Sprintf("unknown flag %q", name))
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("failed to bind flag %q: %v", name, err))
		}
	}
}
