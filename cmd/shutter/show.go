package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/service"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print one photo and its fitted size",
		Long:  `Fetch a single photo and print its details, with the display size it would get in the current terminal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cfgFile, logLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cols, rows := terminalSize()
			widthPx := float64(cols * a.cfg.UI.CellWidthPx)
			heightPx := float64(rows * a.cfg.UI.CellHeightPx)

			session := a.gallery.NewDetailSession(args[0], widthPx, heightPx)
			defer session.Close()

			state := session.Load(ctx)
			switch state.Status {
			case service.DetailNotFound:
				return fmt.Errorf("photo %q: %w", args[0], domain.ErrNotFound)
			case service.DetailFailed:
				if errors.Is(state.Err, domain.ErrInvalidDimensions) {
					return state.Err
				}
				return fmt.Errorf("loading photo %q: %w", args[0], state.Err)
			}

			p := state.Photo
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.DisplayTitle())
			fmt.Fprintf(out, "By %s\n\n", p.AuthorName)
			fmt.Fprintf(out, "%s\n\n", p.DisplayDescription())
			fmt.Fprintf(out, "Resolution:  %s\n", p.Resolution())
			fmt.Fprintf(out, "Fitted:      %.0f×%.0f px (viewport %.0f×%.0f px)\n",
				state.Fit.DisplayWidth, state.Fit.DisplayHeight, widthPx, heightPx)
			fmt.Fprintf(out, "Full:        %s\n", p.FullURL)
			if p.PageURL != "" {
				fmt.Fprintf(out, "Page:        %s\n", p.PageURL)
			}
			return nil
		},
	}

	return cmd
}
