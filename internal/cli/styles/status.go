package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// StatusRenderer renders command line output with styled text.
type StatusRenderer struct {
	theme *Theme
}

// NewStatusRenderer creates a new status renderer with the given theme.
func NewStatusRenderer(theme *Theme) *StatusRenderer {
	return &StatusRenderer{theme: theme}
}

// RenderLevel renders what the running instance inhibits.
func (r *StatusRenderer) RenderLevel(level entity.InhibitLevel) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s Inhibiting %s %s",
		iconStyle.Render(LevelIcon(level)),
		r.theme.Normal.Render(strings.ToLower(level.Label())),
		r.theme.LevelBadge(level),
	)
}

// RenderShortcuts renders bound global shortcuts, one per line.
func (r *StatusRenderer) RenderShortcuts(shortcuts []entity.BoundShortcut) string {
	if len(shortcuts) == 0 {
		return r.RenderInfo("no global shortcuts bound")
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s Global shortcuts (%d):\n",
		iconStyle.Render(IconKeyboard), len(shortcuts)))
	for _, s := range shortcuts {
		trigger := s.TriggerDescription
		if trigger == "" {
			trigger = "unassigned"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			iconStyle.Render(IconCursor),
			r.theme.Normal.Render(s.Description),
			r.theme.BadgeMuted.Render(trigger),
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderPath renders a labelled file path.
func (r *StatusRenderer) RenderPath(label, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s %s %s", iconStyle.Render(IconConfig), label, r.theme.Subtle.Render(path))
}

// RenderSuccess renders a success message.
func (r *StatusRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s", r.theme.SuccessStyle.Render(IconCheck), msg)
}

// RenderInfo renders an informational message.
func (r *StatusRenderer) RenderInfo(msg string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s %s", iconStyle.Render(IconInfo), r.theme.Subtle.Render(msg))
}

// RenderError renders an error message.
func (r *StatusRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), err.Error())
}
