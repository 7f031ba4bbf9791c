package cli

import (
	"context"
	"fmt"

	"github.com/example/boardsync/internal/domain"
	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage board groups",
	}

	cmd.AddCommand(
		newGroupAddCmd(app),
		newGroupListCmd(app),
		newGroupMoveCmd(app),
		newGroupResizeCmd(app),
		newGroupRenameCmd(app),
		newGroupRemoveCmd(app),
	)
	return cmd
}

func newGroupAddCmd(app *App) *cobra.Command {
	var parentID string
	var x, y, w, h float64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &domain.Group{Name: args[0], X: x, Y: y, W: w, H: h}
			if parentID != "" {
				g.ParentID = &parentID
			}
			if err := app.Board.CreateGroup(context.Background(), g); err != nil {
				return err
			}
			fmt.Printf("Added group %s (%s)\n", g.Name, g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "Parent group ID")
	cmd.Flags().Float64Var(&x, "x", 0, "X position")
	cmd.Flags().Float64Var(&y, "y", 0, "Y position")
	cmd.Flags().Float64Var(&w, "w", 320, "Width")
	cmd.Flags().Float64Var(&h, "h", 240, "Height")
	return cmd
}

func newGroupListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := app.Board.Groups(context.Background())
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Println("No groups found.")
				return nil
			}
			for _, g := range groups {
				fmt.Printf("%s  %s  %s\n",
					g.Name,
					app.render(styleDim, fmt.Sprintf("(%.0f,%.0f %vx%v)", g.X, g.Y, g.W, g.H)),
					app.render(styleDim, g.ID))
			}
			return nil
		},
	}
}

func newGroupMoveCmd(app *App) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "mv ID",
		Short: "Move a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.MoveGroup(context.Background(), args[0], x, y); err != nil {
				return err
			}
			fmt.Printf("Moved group %s to (%.0f, %.0f)\n", args[0], x, y)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "X position")
	cmd.Flags().Float64Var(&y, "y", 0, "Y position")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newGroupResizeCmd(app *App) *cobra.Command {
	var w, h float64

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Resize a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.ResizeGroup(context.Background(), args[0], w, h); err != nil {
				return err
			}
			fmt.Printf("Resized group %s to %vx%v\n", args[0], w, h)
			return nil
		},
	}

	cmd.Flags().Float64Var(&w, "w", 320, "Width")
	cmd.Flags().Float64Var(&h, "h", 240, "Height")
	return cmd
}

func newGroupRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.RenameGroup(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed group %s\n", args[0])
			return nil
		},
	}
}

func newGroupRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a group (member tasks become loose cards)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.DeleteGroup(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted group %s\n", args[0])
			return nil
		},
	}
}
