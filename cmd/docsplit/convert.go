package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/render"
	"github.com/roivaz/docsplit/internal/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a document to markdown and keep it in the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		log := newLogger()
		doc, err := extract.NewRegistry(log.WithName("extract"), config.MaxContentBytes()).Extract(cmd.Context(), path)
		if err != nil {
			return err
		}
		out, err := render.Document(doc, format)
		if err != nil {
			return err
		}

		noStore, _ := cmd.Flags().GetBool("no-store")
		if noStore {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		return withStore(func(st *store.Store) error {
			abs, _ := filepath.Abs(path)
			file, err := st.NewFile(filepath.Base(path), abs, info.Size())
			if err != nil {
				return err
			}
			// The stored original is always markdown since split reads it back.
			if err := st.PutOutput(file.ID, store.KindOriginal, store.Output{
				Format:    string(render.FormatMarkdown),
				Content:   []byte(render.Markdown(doc)),
				CreatedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
			log.Info("converted document", "id", file.ID, "name", file.Name, "format", doc.Format)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id: %s\n\n", file.ID)
			if full, _ := cmd.Flags().GetBool("full"); full {
				_, err = w.Write(out)
				return err
			}
			fmt.Fprintln(w, render.Preview(string(out), render.PreviewLength))
			return nil
		})
	},
}

func init() {
	convertCmd.Flags().StringP("format", "f", "md", "Output format (md, json, yaml)")
	convertCmd.Flags().Bool("full", false, "Print the whole conversion instead of a preview")
	convertCmd.Flags().Bool("no-store", false, "Print the conversion without storing it")
}

func formatFlag(cmd *cobra.Command) (render.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	return render.ParseFormat(name)
}
