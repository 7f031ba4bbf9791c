package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var groupID, priority, due string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			it := &domain.Item{Title: args[0], Priority: domain.Priority(priority)}
			if groupID != "" {
				it.GroupID = &groupID
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("parsing --due: %w", err)
				}
				it.DueDate = &d
			}

			if err := app.Board.CreateItem(ctx, it); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", it.Title, it.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "Owning group ID")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|normal|high)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			items, err := app.Board.Items(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			for _, it := range items {
				fmt.Println(formatItemLine(app, it))
			}
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "move ID [X Y]",
		Short: "Move a task on the board or into a group",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]

			if groupID != "" {
				target := &groupID
				if groupID == "none" {
					target = nil
				}
				if err := app.Board.AssignItem(ctx, id, target); err != nil {
					return err
				}
				fmt.Printf("Moved %s\n", id)
				return nil
			}

			if len(args) != 3 {
				return fmt.Errorf("either --group or X Y coordinates are required")
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parsing X: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parsing Y: %w", err)
			}
			if err := app.Board.MoveItem(ctx, id, x, y); err != nil {
				return err
			}
			fmt.Printf("Moved %s to (%.0f, %.0f)\n", id, x, y)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "Target group ID, or 'none' to unassign")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.SetItemStatus(context.Background(), args[0], domain.ItemDone); err != nil {
				return err
			}
			fmt.Printf("Done %s\n", args[0])
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.DeleteItem(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func formatItemLine(app *App, it domain.Item) string {
	marker := " "
	switch it.Status {
	case domain.ItemDone:
		marker = app.render(styleGreen, "✓")
	case domain.ItemDoing:
		marker = app.render(styleYellow, "›")
	}
	line := fmt.Sprintf("%s %s  %s", marker, it.Title, app.render(styleDim, it.ID))
	if it.Priority == domain.PriorityHigh {
		line += " " + app.render(styleRed, "!")
	}
	if it.DueDate != nil {
		line += " " + app.render(styleDim, it.DueDate.Format("2006-01-02"))
	}
	return line
}
