package styles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

func testRenderer() *styles.StatusRenderer {
	return styles.NewStatusRenderer(styles.NewTheme(""))
}

func TestNewTheme_DefaultAccent(t *testing.T) {
	theme := styles.NewTheme("")
	assert.Equal(t, styles.DefaultAccent, string(theme.Accent))

	theme = styles.NewTheme("#ff0000")
	assert.Equal(t, "#ff0000", string(theme.Accent))
}

func TestRenderLevel(t *testing.T) {
	out := testRenderer().RenderLevel(entity.InhibitSuspendAndIdle)
	assert.Contains(t, out, "suspend and idle")
	assert.Contains(t, out, "suspend-and-idle")
}

func TestRenderShortcuts(t *testing.T) {
	r := testRenderer()

	assert.Contains(t, r.RenderShortcuts(nil), "no global shortcuts bound")

	out := r.RenderShortcuts([]entity.BoundShortcut{
		{ID: entity.ShortcutToggleSuspend, Description: "Toggle inhibit suspend", TriggerDescription: "Super+F11"},
		{ID: entity.ShortcutToggleSuspendAndIdle, Description: "Toggle inhibit suspend and idle"},
	})
	assert.Contains(t, out, "Global shortcuts (2)")
	assert.Contains(t, out, "Super+F11")
	assert.Contains(t, out, "unassigned")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, testRenderer().RenderError(errors.New("boom")), "boom")
}

func TestWindowKeyMap_FullHelpCoversEveryBinding(t *testing.T) {
	km := styles.DefaultWindowKeyMap()
	count := 0
	for _, col := range km.FullHelp() {
		count += len(col)
	}
	assert.Equal(t, 13, count)
}
