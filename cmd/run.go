package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/app"
	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/session"
)

// runApp builds dependencies and launches the TUI, optionally on a path.
// With resume a link without a day opens on the last visited day.
func runApp(cmd *cobra.Command, open *navigation.Link, resume bool) error {
	e, err := setup(setupOptions{defaultLogFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	if open != nil && resume {
		link, err := session.ResumeLink(cmd.Context(), e.store.CursorRepo(), *open)
		if err != nil {
			return err
		}
		open = &link
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Services: e.services(cmd.Context()),
		Open:     open,
		NoSplash: noSplash,
	})
}
