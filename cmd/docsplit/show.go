package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roivaz/docsplit/internal/splitter"
	"github.com/roivaz/docsplit/internal/store"
)

var showCmd = &cobra.Command{
	Use:       "show <id> [original|split]",
	Short:     "Print a stored conversion or split",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{string(store.KindOriginal), string(store.KindSplit)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := store.KindOriginal
		if len(args) == 2 {
			kind = store.Kind(args[1])
			if kind != store.KindOriginal && kind != store.KindSplit {
				return fmt.Errorf("output kind must be original or split, got %q", args[1])
			}
		}
		return withStore(func(st *store.Store) error {
			out, err := st.GetOutput(args[0], kind)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out.Content)
			return err
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			files, err := st.ListFiles()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tUPLOADED\tSPLIT")
			for _, f := range files {
				split := "-"
				if out, err := st.GetOutput(f.ID, store.KindSplit); err == nil {
					split = fmt.Sprintf("%d chunks", out.ChunkCount)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", f.ID, f.Name, f.Size, f.UploadedAt.Format("2006-01-02 15:04"), split)
			}
			return w.Flush()
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a stored document and its outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			return st.Delete(args[0])
		})
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Describe the available split strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, s := range splitter.Strategies() {
			fmt.Fprintf(w, "%s\n  %s\n  parameters: %v\n", s.Name, s.Description, s.Parameters)
			fmt.Fprintf(w, "  defaults: chunk_size=%d chunk_overlap=%d keep_separator=%t\n",
				s.Defaults.ChunkSize, s.Defaults.ChunkOverlap, s.Defaults.KeepSeparator)
			if len(s.DefaultSeparators) > 0 {
				fmt.Fprintf(w, "  separators: %q\n", s.DefaultSeparators)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}
