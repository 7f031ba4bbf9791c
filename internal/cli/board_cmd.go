package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/boardsync/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the board grouped by container",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out, err := renderBoard(ctx, app)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func renderBoard(ctx context.Context, app *App) (string, error) {
	groups, err := app.Board.Groups(ctx)
	if err != nil {
		return "", err
	}
	items, err := app.Board.Items(ctx)
	if err != nil {
		return "", err
	}

	byGroup := make(map[string][]domain.Item)
	var loose []domain.Item
	for _, it := range items {
		if it.GroupID == nil {
			loose = append(loose, it)
			continue
		}
		byGroup[*it.GroupID] = append(byGroup[*it.GroupID], it)
	}

	var b strings.Builder
	for _, g := range groups {
		header := strings.ToUpper(g.Name)
		b.WriteString(app.render(styleHeader, header) + "\n")
		b.WriteString(app.render(styleDim, strings.Repeat("─", len(header))) + "\n")
		members := byGroup[g.ID]
		if len(members) == 0 {
			b.WriteString(app.render(styleDim, "  (empty)") + "\n")
		}
		for _, it := range members {
			b.WriteString("  " + formatItemLine(app, it) + "\n")
		}
		b.WriteString("\n")
	}

	if len(loose) > 0 {
		b.WriteString(app.render(styleHeader, "UNGROUPED") + "\n")
		b.WriteString(app.render(styleDim, strings.Repeat("─", len("UNGROUPED"))) + "\n")
		for _, it := range loose {
			b.WriteString("  " + formatItemLine(app, it) + "\n")
		}
	}
	return b.String(), nil
}
