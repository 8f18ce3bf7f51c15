package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/service"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print photos from the catalog feed",
		Long:  `Fetch the feed page by page and print one photo per line. Stops early when the catalog runs out.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cfgFile, logLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			feed := service.NewPaginator(a.catalog, a.cfg.Catalog.PerPage, a.logger)
			defer feed.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PAGE\tID\tAUTHOR\tSIZE\tURL")

			err = service.LoadPages(ctx, feed, pages, func(page int, items []domain.PhotoSummary) {
				for _, p := range items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d×%d\t%s\n", page, p.ID, p.AuthorName, p.Width, p.Height, p.PageURL)
				}
			})
			if flushErr := w.Flush(); flushErr != nil && err == nil {
				err = flushErr
			}
			if err != nil {
				return fmt.Errorf("listing photos: %w", err)
			}

			state := feed.Snapshot()
			if state.Exhausted {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d photos, end of catalog\n", len(state.Items))
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d photos, next page %d\n", len(state.Items), state.NextPage)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to fetch (0 = until the catalog runs out)")

	return cmd
}
