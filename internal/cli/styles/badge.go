package styles

import (
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// LevelBadge renders the inhibit level, highlighted while something is inhibited.
func (t *Theme) LevelBadge(level entity.InhibitLevel) string {
	if level == entity.InhibitNone {
		return t.BadgeMuted.Render(level.String())
	}
	return t.Badge.Render(level.String())
}

// LevelIcon returns the icon matching level.
func LevelIcon(level entity.InhibitLevel) string {
	if level == entity.InhibitNone {
		return IconMoon
	}
	return IconCoffee
}
