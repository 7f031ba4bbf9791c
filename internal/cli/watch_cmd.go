package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes written by other sessions",
		Long: `Polls the backing store and feeds every change written after session
start through the sync engine, subject to the usual suppression rules
(gesture locks, pending local writes, the startup grace window).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watermark := time.Now().UTC()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			fmt.Println("Watching for remote changes. Ctrl-C to stop.")
			for {
				select {
				case <-ctx.Done():
					app.Engine.Flush()
					return nil
				case <-ticker.C:
					// Advance the watermark to just before the query so a row
					// written mid-poll is picked up next round instead of lost.
					next := time.Now().UTC()
					changes, err := app.Store.ChangesSince(ctx, watermark)
					if err != nil {
						app.Logger.Error("polling for changes", "error", err)
						continue
					}
					watermark = next
					for _, change := range changes {
						app.Engine.ApplyRemote(ctx, change)
						fmt.Printf("%s %s %s\n",
							app.render(styleDim, time.Now().Format("15:04:05")),
							change.Operation(),
							change.EntityID())
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Poll interval")
	return cmd
}
