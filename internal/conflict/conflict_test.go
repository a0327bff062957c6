package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/shortcut"
)

func only(target shortcut.Shortcut) Predicate {
	return func(s shortcut.Shortcut) bool { return s == target }
}

func TestResolveOK(t *testing.T) {
	c := shortcut.MustParse("cmd+shift+c")
	r := Resolve(c, menu.New(), only(shortcut.MustParse("cmd+space")), only(shortcut.MustParse("space")))
	assert.Equal(t, OK, r.Verdict)
}

func TestResolveMenuWinsOverTables(t *testing.T) {
	c := shortcut.MustParse("cmd+space")
	bar := menu.New(menu.Item{ID: "find", Title: "Find", Shortcut: c})

	r := Resolve(c, bar, only(c), only(c))

	assert.Equal(t, ClaimedByMenu, r.Verdict)
	assert.Equal(t, "Find", r.Item.Title)
}

func TestResolveDisallowedBeforeReserved(t *testing.T) {
	c := shortcut.MustParse("ctrl+k")
	r := Resolve(c, nil, only(c), only(c))
	assert.Equal(t, Disallowed, r.Verdict)
}

func TestTablesIndependentOfMenu(t *testing.T) {
	reserved := shortcut.MustParse("ctrl+alt+t")
	disallowed := shortcut.MustParse("ctrl+d")
	menus := []*menu.Bar{
		nil,
		menu.New(),
		menu.New(menu.Item{ID: "x", Title: "Unrelated", Shortcut: shortcut.MustParse("cmd+x")}),
	}
	for _, m := range menus {
		assert.Equal(t, ReservedBySystem, Resolve(reserved, m, only(reserved), only(disallowed)).Verdict)
		assert.Equal(t, Disallowed, Resolve(disallowed, m, only(reserved), only(disallowed)).Verdict)
	}
}

func TestResolverAssigned(t *testing.T) {
	c := shortcut.MustParse("cmd+shift+c")
	r := NewResolver(menu.New())
	r.Assigned = func(s shortcut.Shortcut) (string, bool) {
		return "other", s == c
	}

	got := r.Resolve(c)

	assert.Equal(t, ClaimedByName, got.Verdict)
	assert.Equal(t, "other", got.Name)
}

func TestResolverPlatformTables(t *testing.T) {
	r := NewResolver(nil)

	assert.Equal(t, Disallowed, r.Resolve(shortcut.New(shortcut.KeySpace, shortcut.ModNone)).Verdict)
	assert.Equal(t, OK, r.Resolve(shortcut.MustParse("cmd+shift+c")).Verdict)
	for s, owner := range shortcut.ReservedBySystem() {
		got := r.Resolve(s)
		if got.Verdict == Disallowed {
			continue
		}
		assert.Equal(t, ReservedBySystem, got.Verdict, s.String())
		assert.Equal(t, owner, got.Owner)
	}
}

func TestResolverOwnerFollowsReservedTable(t *testing.T) {
	custom := shortcut.MustParse("ctrl+alt+j")
	r := NewResolver(nil)
	r.SetReserved(map[shortcut.Shortcut]string{custom: "Launcher"})

	got := r.Resolve(custom)
	assert.Equal(t, ReservedBySystem, got.Verdict)
	assert.Equal(t, "Launcher", got.Owner)

	for s := range shortcut.ReservedBySystem() {
		got := r.Resolve(s)
		assert.NotEqual(t, ReservedBySystem, got.Verdict, s.String())
		assert.Empty(t, got.Owner)
	}
}

func TestReservedWithoutOwnerLeavesOwnerEmpty(t *testing.T) {
	c := shortcut.MustParse("ctrl+alt+t")
	r := NewResolver(nil)
	r.Reserved = only(c)
	r.Owner = nil

	got := r.Resolve(c)

	assert.Equal(t, ReservedBySystem, got.Verdict)
	assert.Empty(t, got.Owner)
	assert.Empty(t, Resolve(c, nil, only(c), nil).Owner)
}
