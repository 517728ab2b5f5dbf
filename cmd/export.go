package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/export"
	"github.com/abhisek/edupath/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <path-id>",
	Short: "Export a learning path as Markdown",
	Long:  "Write the path as Markdown to a file (default <title>.md) or to stdout with -o -.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.store.PathRepo().GetPath(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("learning path %q not found", args[0])
		}
		if err != nil {
			return err
		}

		md := export.Markdown(p)
		if out == "-" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}
		if out == "" {
			out = export.FileName(p)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Println("Exported to", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file, or - for stdout")
}
