package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/db"
	dbmigrate "github.com/roivaz/docsplit/internal/db/migrate"
	"github.com/roivaz/docsplit/internal/embeddings"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/ingest"
	"github.com/roivaz/docsplit/internal/splitter"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Convert, split and embed every document under a directory into Postgres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, _ := cmd.Flags().GetString("params")
		splitCfg, err := splitter.ParseParams(params, config.SplitDefaults())
		if err != nil {
			return err
		}
		if err := splitCfg.Normalize().Validate(); err != nil {
			return err
		}

		log := newLogger()
		database, err := db.NewDatabase(db.Config{DSN: config.PostgresURL(), Debug: config.DBDebug()})
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := dbmigrate.EnsureCurrent(ctx, database.Bun(), config.MigrationsDir(), true); err != nil {
			return err
		}

		client, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.EmbeddingTimeout(), log.WithName("embeddings"))
		if err != nil {
			return err
		}

		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		maxFiles, _ := cmd.Flags().GetInt("max-files")
		batch, _ := cmd.Flags().GetInt("batch-size")
		force, _ := cmd.Flags().GetBool("force")

		ing := &ingest.Ingester{
			Store:     db.NewSearchRepository(database),
			Client:    client,
			Extractor: extract.NewRegistry(log.WithName("extract"), config.MaxContentBytes()),
			Splitter:  splitter.New(log.WithName("splitter")),
			Split:     splitCfg,
			Include:   include,
			Exclude:   exclude,
			MaxFiles:  maxFiles,
			BatchSize: batch,
			ModelName: client.Model(),
			Force:     force,
			Log:       log.WithName("ingest"),
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			ing.Progress = progressReporter()
		}

		stats, err := ing.Run(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ingested %d files (%d chunks), %d unchanged, %d failed\n",
			stats.Files, stats.Chunks, stats.Skipped, stats.Failed)
		if stats.Failed > 0 {
			return fmt.Errorf("%d files failed to ingest", stats.Failed)
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringSlice("include", nil, "Glob patterns of files to ingest (default **/*)")
	ingestCmd.Flags().StringSlice("exclude", []string{"**/.git/**", "**/node_modules/**"}, "Glob patterns to skip")
	ingestCmd.Flags().Int("max-files", 0, "Stop after this many files (0 = no limit)")
	ingestCmd.Flags().Int("batch-size", 16, "Chunks per embedding request")
	ingestCmd.Flags().Bool("force", false, "Re-ingest files whose content did not change")
	ingestCmd.Flags().Bool("quiet", false, "Disable the progress bar")
	ingestCmd.Flags().String("params", "", "Splitter parameters as a JSON object")
}

func progressReporter() func(ingest.Event) {
	var bar *progressbar.ProgressBar
	return func(ev ingest.Event) {
		if bar == nil {
			bar = progressbar.NewOptions(ev.Total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		_ = bar.Set(ev.Index)
	}
}

