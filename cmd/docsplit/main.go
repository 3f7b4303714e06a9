package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "docsplit",
	Short:         "Convert documents to markdown and split them into chunks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("store", "", "Path of the local output store")
	flags.String("postgres-url", "", "Postgres connection URL")
	flags.String("ollama-url", "", "Ollama base URL")
	flags.String("strategy", "", "Default split strategy")
	flags.Int("chunk-size", 0, "Default chunk size")
	flags.Int("chunk-overlap", 0, "Default chunk overlap")

	config.Init(rootCmd)
	bindFlag(config.KeyLogLevel, "log-level")
	bindFlag(config.KeyStorePath, "store")
	bindFlag(config.KeyPostgresURL, "postgres-url")
	bindFlag(config.KeyOllamaURL, "ollama-url")
	bindFlag(config.KeySplitStrategy, "strategy")
	bindFlag(config.KeyChunkSize, "chunk-size")
	bindFlag(config.KeyChunkOverlap, "chunk-overlap")

	rootCmd.AddCommand(convertCmd, splitCmd, showCmd, listCmd, deleteCmd, strategiesCmd, ingestCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "docsplit: %v\n", err)
		os.Exit(1)
	}
}

// bindFlag maps a hyphenated flag onto its config key.
func bindFlag(key, name string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
}

func newLogger() logging.Logger {
	return logging.New(logging.ForLevel(config.LogLevel()))
}

func withStore(fn func(*store.Store) error) error {
	st, err := store.Open(config.StorePath())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
