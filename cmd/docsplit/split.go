package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/render"
	"github.com/roivaz/docsplit/internal/splitter"
	"github.com/roivaz/docsplit/internal/store"
)

var splitCmd = &cobra.Command{
	Use:   "split <id|file>",
	Short: "Split a stored conversion, or a file directly, into chunks",
	Long: `Split the markdown conversion stored under <id>, saving the result next to
it. When the argument is a path to an existing file the file is converted and
split without touching the store.

Parameters come from the configured defaults, overridden by --params, e.g.
  --params '{"splitter_type":"markdown","chunk_size":500,"chunk_overlap":50}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		params, _ := cmd.Flags().GetString("params")
		cfg, err := splitter.ParseParams(params, config.SplitDefaults())
		if err != nil {
			return err
		}

		log := newLogger()
		split := func(text string) ([]byte, int, error) {
			chunks, err := splitter.New(log.WithName("splitter")).Split(text, cfg)
			if err != nil {
				return nil, 0, err
			}
			res := render.NewSplitResult(chunks, cfg.Normalize())
			out, err := render.Split(res, format)
			return out, res.ChunkCount, err
		}

		if _, statErr := os.Stat(args[0]); statErr == nil {
			doc, err := extract.NewRegistry(log.WithName("extract"), config.MaxContentBytes()).Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, _, err := split(render.Markdown(doc))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		return withStore(func(st *store.Store) error {
			id := args[0]
			original, err := st.GetOutput(id, store.KindOriginal)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no converted document with id %s", id)
			}
			if err != nil {
				return err
			}
			out, count, err := split(string(original.Content))
			if err != nil {
				return err
			}
			if err := st.PutOutput(id, store.KindSplit, store.Output{
				Format:     string(format),
				Content:    out,
				ChunkCount: count,
				CreatedAt:  time.Now().UTC(),
			}); err != nil {
				return err
			}
			log.Info("split document", "id", id, "chunks", count, "strategy", cfg.Normalize().Strategy)
			_, err = cmd.OutOrStdout().Write(out)
			return err
		})
	},
}

func init() {
	splitCmd.Flags().StringP("format", "f", "md", "Output format (md, json, yaml)")
	splitCmd.Flags().String("params", "", "Splitter parameters as a JSON object")
}
