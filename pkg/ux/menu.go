package ux

import (
	"github.com/reardencode/firmware/pkg/ux/keypad"
)

// Item is a single menu entry. Exactly one of Menu, Func, or Chooser
// gives it behavior; a bare Item is inert.
type Item struct {
	Label string

	// Menu is a submenu pushed onto the stack when the item is selected.
	Menu []Item

	// Func runs when the item is selected. It may push, replace, or pop
	// screens through the context.
	Func func(c *Context, idx int, it *Item) error

	// Chooser presents a pick-one submenu: it returns the currently
	// selected index, the choice labels, and a setter called with the
	// user's pick.
	Chooser func() (selected int, choices []string, set func(idx int, choice string))

	// Arg is opaque caller data, available to Func.
	Arg any

	// Predicate, when set and false, hides the item.
	Predicate func() bool
}

// Menu is a scrolling list screen. Selection runs the item; cancel pops
// back to the parent menu, or just rewinds the cursor at the root.
type Menu struct {
	ctx    *Context
	source []Item
	items  []Item
	cursor int
	ypos   int
	chosen int // index rendered with the chosen marker, -1 when unset
}

// NewMenu builds a menu screen over items, hiding entries whose
// predicate is false.
func NewMenu(c *Context, items []Item) *Menu {
	m := &Menu{
		ctx:    c,
		source: items,
		chosen: -1,
	}
	m.UpdateContents()
	return m
}

// perPage leaves one line of breathing room below the list.
func (m *Menu) perPage() int {
	if n := m.ctx.Profile.StoryH - 1; n > 0 {
		return n
	}
	return 1
}

// UpdateContents re-applies the item predicates. Implements the optional
// Refresher capability.
func (m *Menu) UpdateContents() {
	m.items = m.items[:0]
	for _, it := range m.source {
		if it.Predicate == nil || it.Predicate() {
			m.items = append(m.items, it)
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
	if m.ypos > m.cursor {
		m.ypos = m.cursor
	}
}

// Show redraws the menu. Implements the optional Shower capability.
func (m *Menu) Show() {
	per := m.perPage()
	end := m.ypos + per
	if end > len(m.items) {
		end = len(m.items)
	}

	labels := make([]string, 0, end-m.ypos)
	for i := m.ypos; i < end; i++ {
		label := m.items[i].Label
		if i == m.chosen {
			label += " *"
		}
		labels = append(labels, label)
	}

	m.ctx.Display.DrawMenu(labels, m.cursor-m.ypos, m.ypos, len(m.items))
}

func (m *Menu) down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
	if m.cursor-m.ypos >= m.perPage() {
		m.ypos++
	}
}

func (m *Menu) up() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.ypos {
			m.ypos--
		}
	}
}

// top rewinds cursor and scroll to the first item.
func (m *Menu) top() {
	m.cursor = 0
	m.ypos = 0
}

// page moves a whole screenful down (dir=1) or up (dir=-1).
func (m *Menu) page(dir int) {
	for i := 0; i < m.perPage(); i++ {
		if dir > 0 {
			m.down()
		} else {
			m.up()
		}
	}
}

// gotoVisible jumps to the n'th item of the current screenful.
func (m *Menu) gotoVisible(n int) {
	m.cursor = max(min(n+m.ypos, len(m.items)-1), 0)
	m.ypos = max(m.cursor-n, 0)
}

// gotoIndex jumps to any item, scrolling it near the top of the screen.
func (m *Menu) gotoIndex(n int) {
	m.cursor = max(min(n, len(m.items)-1), 0)
	if m.cursor < m.perPage()-1 {
		m.ypos = 0
	} else {
		m.ypos = m.cursor - 2
	}
}

// Interact implements stack.Screen: run the selection loop until this
// menu is no longer the active screen.
func (m *Menu) Interact() error {
	for m.ctx.Stack.Top() == m {
		idx, err := m.waitChoice()
		if err != nil {
			return err
		}
		if err := m.activate(idx); err != nil {
			return err
		}
	}
	return nil
}

// waitChoice lets the user move around the menu and returns the selected
// index, or -1 for cancel/back.
func (m *Menu) waitChoice() (int, error) {
	for {
		m.Show()

		k, err := keypad.WaitKeyUp(m.ctx.Keys, "")
		if err != nil {
			return 0, err
		}

		switch k {
		case "5", keypad.KeyUp:
			m.up()
		case "8", keypad.KeyDown:
			m.down()
		case "7", keypad.KeyPageUp:
			m.page(-1)
		case "9", keypad.KeyPageDown:
			m.page(1)
		case "0", keypad.KeyHome:
			m.top()
		case "1", "2", "3", "4":
			m.gotoVisible(int(k[0] - '1'))
		case keypad.KeySelect, keypad.KeyYes:
			return m.cursor, nil
		case keypad.KeyCancel, keypad.KeyNo:
			return -1, nil
		}
	}
}

func (m *Menu) activate(idx int) error {
	if idx < 0 {
		m.onCancel()
		return nil
	}
	it := &m.items[idx]

	switch {
	case it.Chooser != nil:
		selected, choices, set := it.Chooser()
		sub := make([]Item, len(choices))
		for i, choice := range choices {
			sub[i] = Item{Label: choice, Func: pickFunc(i, choice, set)}
		}
		child := NewMenu(m.ctx, sub)
		child.chosen = selected
		child.gotoIndex(selected)
		m.ctx.Stack.Push(child)

	case it.Func != nil:
		return it.Func(m.ctx, idx, it)

	case it.Menu != nil:
		m.ctx.Stack.Push(NewMenu(m.ctx, it.Menu))
	}
	return nil
}

func pickFunc(i int, choice string, set func(int, string)) func(*Context, int, *Item) error {
	return func(c *Context, _ int, _ *Item) error {
		set(i, choice)
		c.Stack.Pop()
		return nil
	}
}

func (m *Menu) onCancel() {
	if m.ctx.Stack.Pop() {
		// already at the root menu
		m.top()
	}
}
