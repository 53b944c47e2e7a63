package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInhibitLevel_Flags(t *testing.T) {
	assert.Equal(t, InhibitFlags(0), InhibitNone.Flags())
	assert.Equal(t, InhibitFlagSuspend, InhibitSuspend.Flags())
	assert.Equal(t, InhibitFlagSuspend|InhibitFlagIdle, InhibitSuspendAndIdle.Flags())
}

func TestInhibitFlags_LevelRoundTrip(t *testing.T) {
	for _, level := range InhibitLevels() {
		assert.Equal(t, level, level.Flags().Level(), "level %s", level)
	}
	// Idle alone does not make sense without suspend and maps to nothing.
	assert.Equal(t, InhibitNone, InhibitFlagIdle.Level())
}

func TestInhibitLevel_Ordering(t *testing.T) {
	assert.Less(t, int(InhibitNone), int(InhibitSuspend))
	assert.Less(t, int(InhibitSuspend), int(InhibitSuspendAndIdle))
}

func TestInhibitLevel_Toggle(t *testing.T) {
	assert.Equal(t, InhibitSuspend, InhibitNone.Toggle(InhibitSuspend))
	assert.Equal(t, InhibitNone, InhibitSuspend.Toggle(InhibitSuspend))
	assert.Equal(t, InhibitSuspendAndIdle, InhibitSuspend.Toggle(InhibitSuspendAndIdle))
	assert.Equal(t, InhibitNone, InhibitSuspendAndIdle.Toggle(InhibitSuspendAndIdle))
}

func TestParseInhibitLevel(t *testing.T) {
	tests := []struct {
		in   string
		want InhibitLevel
	}{
		{"none", InhibitNone},
		{"Nothing", InhibitNone},
		{"suspend", InhibitSuspend},
		{" suspend-and-idle ", InhibitSuspendAndIdle},
		{"idle", InhibitSuspendAndIdle},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInhibitLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseInhibitLevel("hibernate")
	assert.Error(t, err)
}

func TestInhibitLevel_StringParses(t *testing.T) {
	for _, level := range InhibitLevels() {
		got, err := ParseInhibitLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}
}

func TestInhibitFlags_String(t *testing.T) {
	assert.Equal(t, "none", InhibitFlags(0).String())
	assert.Equal(t, "suspend|idle", (InhibitFlagSuspend | InhibitFlagIdle).String())
}

func TestShortcutID_Target(t *testing.T) {
	level, ok := ShortcutToggleSuspend.Target()
	assert.True(t, ok)
	assert.Equal(t, InhibitSuspend, level)

	level, ok = ShortcutToggleSuspendAndIdle.Target()
	assert.True(t, ok)
	assert.Equal(t, InhibitSuspendAndIdle, level)

	_, ok = ShortcutID("bogus").Target()
	assert.False(t, ok)
}

func TestDeclaredShortcuts_UniqueIDs(t *testing.T) {
	seen := map[ShortcutID]bool{}
	for _, s := range DeclaredShortcuts("<Super>F11", "") {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.NotEmpty(t, s.Description)
	}
	assert.Len(t, seen, 2)
}
