package ux

import (
	"reflect"
	"testing"

	"github.com/reardencode/firmware/pkg/ux/keypad"
)

func TestMenuNavigateAndSelect(t *testing.T) {
	keys := &fakeKeys{script: presses("8", "8", keypad.KeySelect)}
	c, _ := newTestContext(t, keys)

	var picked int
	items := []Item{
		{Label: "Alpha"},
		{Label: "Bravo"},
		{Label: "Charlie", Func: func(c *Context, idx int, it *Item) error {
			picked = idx
			c.Stack.Pop()
			return nil
		}},
	}

	c.Stack.Reset(nopScreen{})
	m := NewMenu(c, items)
	c.Stack.Push(m)

	if err := m.Interact(); err != nil {
		t.Fatal(err)
	}
	if picked != 2 {
		t.Errorf("picked = %d, want 2", picked)
	}
	if _, ok := c.Stack.Top().(nopScreen); !ok {
		t.Error("menu did not return control to the parent screen")
	}
}

func TestMenuCancelPopsToParent(t *testing.T) {
	keys := &fakeKeys{script: presses(keypad.KeyCancel)}
	c, _ := newTestContext(t, keys)

	c.Stack.Reset(nopScreen{})
	m := NewMenu(c, []Item{{Label: "Only"}})
	c.Stack.Push(m)

	if err := m.Interact(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Stack.Top().(nopScreen); !ok {
		t.Error("cancel did not pop back to the parent")
	}
}

func TestMenuCancelAtRootRewindsCursor(t *testing.T) {
	keys := &fakeKeys{script: append(
		presses("8", keypad.KeyCancel),
		keypad.KeyAbort,
	)}
	c, _ := newTestContext(t, keys)

	m := NewMenu(c, []Item{{Label: "A"}, {Label: "B"}})
	c.Stack.Reset(m)

	err := m.Interact()
	if !IsAborted(err) {
		t.Fatalf("err = %v, want abort to end the test loop", err)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want rewind to 0 on root cancel", m.cursor)
	}
	if c.Stack.Top() != m {
		t.Error("root menu must stay on the stack")
	}
}

func TestMenuSubmenuPush(t *testing.T) {
	keys := &fakeKeys{script: presses(keypad.KeySelect)}
	c, _ := newTestContext(t, keys)

	items := []Item{
		{Label: "Settings", Menu: []Item{{Label: "Idle Timeout"}}},
	}
	m := NewMenu(c, items)
	c.Stack.Reset(m)

	if err := m.Interact(); err != nil {
		t.Fatal(err)
	}

	child, ok := c.Stack.Top().(*Menu)
	if !ok {
		t.Fatal("submenu was not pushed")
	}
	if child.items[0].Label != "Idle Timeout" {
		t.Errorf("submenu first item = %q", child.items[0].Label)
	}
}

func TestMenuChooser(t *testing.T) {
	keys := &fakeKeys{script: presses(keypad.KeySelect)}
	c, disp := newTestContext(t, keys)

	var gotIdx int
	var gotChoice string
	items := []Item{
		{Label: "Color", Chooser: func() (int, []string, func(int, string)) {
			return 1, []string{"Red", "Green", "Blue"}, func(i int, s string) {
				gotIdx, gotChoice = i, s
			}
		}},
	}
	m := NewMenu(c, items)
	c.Stack.Reset(m)

	if err := m.Interact(); err != nil {
		t.Fatal(err)
	}

	child, ok := c.Stack.Top().(*Menu)
	if !ok {
		t.Fatal("chooser submenu was not pushed")
	}
	if child.chosen != 1 || child.cursor != 1 {
		t.Errorf("chosen/cursor = %d/%d, want 1/1", child.chosen, child.cursor)
	}

	// pick the current choice
	keys.script = presses(keypad.KeySelect)
	if err := child.Interact(); err != nil {
		t.Fatal(err)
	}
	if gotIdx != 1 || gotChoice != "Green" {
		t.Errorf("set(%d, %q), want set(1, %q)", gotIdx, gotChoice, "Green")
	}
	if c.Stack.Top() != m {
		t.Error("chooser did not pop back to its parent")
	}

	// the chosen entry renders with the marker
	var sawMarker bool
	for _, fr := range disp.menus {
		for _, l := range fr.labels {
			if l == "Green *" {
				sawMarker = true
			}
		}
	}
	if !sawMarker {
		t.Error("chosen choice never rendered with the * marker")
	}
}

func TestMenuPredicateFilters(t *testing.T) {
	keys := &fakeKeys{}
	c, _ := newTestContext(t, keys)

	show := false
	m := NewMenu(c, []Item{
		{Label: "Always"},
		{Label: "Sometimes", Predicate: func() bool { return show }},
	})
	if len(m.items) != 1 {
		t.Fatalf("visible items = %d, want 1", len(m.items))
	}

	show = true
	m.UpdateContents()
	if len(m.items) != 2 {
		t.Fatalf("visible items = %d after refresh, want 2", len(m.items))
	}
}

func TestMenuScrollWindow(t *testing.T) {
	keys := &fakeKeys{script: append(presses("8", "8", "8", "8", "8"), keypad.KeyAbort)}
	c, disp := newTestContext(t, keys)

	items := []Item{
		{Label: "1"}, {Label: "2"}, {Label: "3"},
		{Label: "4"}, {Label: "5"}, {Label: "6"},
	}
	m := NewMenu(c, items)
	c.Stack.Reset(m)

	err := m.Interact()
	if !IsAborted(err) {
		t.Fatalf("err = %v, want abort to end the test loop", err)
	}

	// compact profile shows 4 items per page; scrolling past the
	// window slides ypos down
	last := disp.menus[len(disp.menus)-1]
	if !reflect.DeepEqual(last.labels, []string{"3", "4", "5", "6"}) {
		t.Errorf("window = %v, want last four items", last.labels)
	}
	if last.selected != 3 || last.ypos != 2 {
		t.Errorf("selected/ypos = %d/%d, want 3/2", last.selected, last.ypos)
	}
	if m.cursor != 5 {
		t.Errorf("cursor = %d, want clamp at last item", m.cursor)
	}
}

func TestMenuShrinkWhileScrolled(t *testing.T) {
	keys := &fakeKeys{}
	c, disp := newTestContext(t, keys)

	show := true
	items := []Item{{Label: "Pinned"}}
	for _, l := range []string{"A", "B", "C", "D", "E"} {
		items = append(items, Item{Label: l, Predicate: func() bool { return show }})
	}
	m := NewMenu(c, items)
	c.Stack.Reset(m)

	// scroll to the bottom, then hide everything but the first item
	for i := 0; i < 5; i++ {
		m.down()
	}
	show = false
	c.RestoreTop()

	if len(m.items) != 1 {
		t.Fatalf("visible items = %d, want 1", len(m.items))
	}
	if m.cursor != 0 || m.ypos != 0 {
		t.Errorf("cursor/ypos = %d/%d, want 0/0 after shrink", m.cursor, m.ypos)
	}
	last := disp.menus[len(disp.menus)-1]
	if !reflect.DeepEqual(last.labels, []string{"Pinned"}) {
		t.Errorf("window = %v, want the one remaining item", last.labels)
	}
}

func TestRestoreTopRefreshesMenu(t *testing.T) {
	keys := &fakeKeys{}
	c, disp := newTestContext(t, keys)

	show := false
	m := NewMenu(c, []Item{
		{Label: "Always"},
		{Label: "Sometimes", Predicate: func() bool { return show }},
	})
	c.Stack.Reset(m)

	show = true
	c.RestoreTop()

	if len(m.items) != 2 {
		t.Errorf("visible items = %d, want predicate re-applied", len(m.items))
	}
	if len(disp.menus) != 1 {
		t.Errorf("frames = %d, want one redraw", len(disp.menus))
	}
}

func TestMenuShortcutDigits(t *testing.T) {
	keys := &fakeKeys{script: append(presses("3"), keypad.KeyAbort)}
	c, _ := newTestContext(t, keys)

	m := NewMenu(c, []Item{
		{Label: "A"}, {Label: "B"}, {Label: "C"}, {Label: "D"},
	})
	c.Stack.Reset(m)

	if err := m.Interact(); !IsAborted(err) {
		t.Fatalf("err = %v, want abort to end the test loop", err)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want shortcut '3' to land on index 2", m.cursor)
	}
}
