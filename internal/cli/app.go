package cli

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/example/boardsync/internal/engine"
	"github.com/example/boardsync/internal/repository"
	"github.com/example/boardsync/internal/service"
	"github.com/spf13/cobra"
)

// App carries the wired services into the command constructors.
type App struct {
	Board  service.BoardService
	Engine *engine.Engine
	Store  *repository.SQLiteStore
	Logger *slog.Logger

	// NoColor disables styling when stdout is not a terminal.
	NoColor bool
}

// Gruvbox-inspired color palette.
var (
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
)

func (a *App) render(st lipgloss.Style, s string) string {
	if a.NoColor {
		return s
	}
	return st.Render(s)
}

// NewRootCmd builds the boardsync command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "boardsync",
		Short:         "Shared task board with optimistic sync and undo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newMoveCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newGroupCmd(app),
		newBoardCmd(app),
		newWatchCmd(app),
	)
	return root
}
