// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var (
	debug    bool
	logLevel slog.LevelVar
)

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "sseindex",
	Short: "Searchable symmetric encryption index engine (Curtmola SSE-1)",
	Long: `A client-held secret key set and an encrypted inverted index
that lets an untrusted server return the identifiers of documents
containing a queried keyword without learning the keyword, the index
structure, or plaintext contents beyond what a single-keyword query
necessarily leaks.

build-index runs the offline client build; serve runs the untrusted
server's search responder; query runs an interactive client REPL against
a running server.
`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().Bool("debug", false, "Print debug logging")
	rootCmd.PersistentFlags().String("config", "", "Pathname of the configuration file")
}

// rootCmdLoadConfig binds a subcommand's flags, reads an optional config
// file, and applies the shared --debug setting. Subcommands call this
// after binding their own flags, same ordering the teacher uses.
func rootCmdLoadConfig(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return err
	}

	if cfgPath := viper.GetString("config"); cfgPath != "" {
		slog.Debug("loading configuration file", "path", cfgPath)
		viper.SetConfigFile(cfgPath)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	debug = viper.GetBool("debug")
	if debug {
		logLevel.Set(slog.LevelDebug)
	}
	return nil
}
