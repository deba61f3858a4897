// Package selection tracks the set of selected record ids under familiar
// click semantics (plain, ctrl, shift-range, checkbox).
package selection

import "sort"

// Controller owns a selection set plus the anchor id (the most recent
// explicit selection target) used as the origin of shift-click ranges.
// It is not safe for concurrent use; a single logical owner is assumed.
type Controller struct {
	selected  map[string]struct{}
	anchor    string
	hasAnchor bool

	// OnChange, when set, is invoked with the current selection after every
	// mutating operation so embedding UIs can react.
	OnChange func(selected []string)
}

// New creates an empty selection controller.
func New() *Controller {
	return &Controller{selected: make(map[string]struct{})}
}

// Click applies plain-click semantics to id: the selection becomes {id},
// unless id was already the sole selected item, in which case the selection
// empties. The anchor moves to id either way.
func (c *Controller) Click(id string) {
	_, wasSelected := c.selected[id]
	soleSelection := wasSelected && len(c.selected) == 1

	c.selected = make(map[string]struct{})
	if !soleSelection {
		c.selected[id] = struct{}{}
	}
	c.setAnchor(id)
	c.notify()
}

// CtrlClick toggles id's membership without touching other members and moves
// the anchor to id.
func (c *Controller) CtrlClick(id string) {
	c.toggle(id)
	c.setAnchor(id)
	c.notify()
}

// ShiftClick adds the inclusive range between the anchor and id, in the
// order of the currently visible item list, to the selection. Members
// outside the range are preserved, and the anchor stays where it was so
// later shift-clicks still measure from the original origin. Without an
// anchor it behaves as a plain click.
func (c *Controller) ShiftClick(id string, visible []string) {
	if !c.hasAnchor {
		c.Click(id)
		return
	}

	from, to := indexOf(visible, c.anchor), indexOf(visible, id)
	if from == -1 || to == -1 {
		// Anchor or target is not visible; fall back to a single add.
		c.selected[id] = struct{}{}
		c.notify()
		return
	}
	if from > to {
		from, to = to, from
	}
	for _, rangeID := range visible[from : to+1] {
		c.selected[rangeID] = struct{}{}
	}
	c.notify()
}

// ToggleCheckbox unconditionally toggles id's membership. It is independent
// of click semantics: it never replaces the rest of the selection and never
// moves the anchor.
func (c *Controller) ToggleCheckbox(id string) {
	c.toggle(id)
	c.notify()
}

// SelectAll selects every id in the given universe.
func (c *Controller) SelectAll(all []string) {
	for _, id := range all {
		c.selected[id] = struct{}{}
	}
	c.notify()
}

// SelectVisible adds every currently visible id to the selection.
func (c *Controller) SelectVisible(visible []string) {
	c.SelectAll(visible)
}

// DeselectVisible removes every currently visible id from the selection.
func (c *Controller) DeselectVisible(visible []string) {
	for _, id := range visible {
		delete(c.selected, id)
	}
	c.notify()
}

// Clear empties the selection and drops the anchor.
func (c *Controller) Clear() {
	c.selected = make(map[string]struct{})
	c.hasAnchor = false
	c.anchor = ""
	c.notify()
}

// IsSelected reports whether id is currently selected.
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// Count returns the number of selected ids.
func (c *Controller) Count() int { return len(c.selected) }

// Selected returns the selected ids in sorted order.
func (c *Controller) Selected() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Anchor returns the current anchor id, if any.
func (c *Controller) Anchor() (string, bool) {
	return c.anchor, c.hasAnchor
}

func (c *Controller) toggle(id string) {
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

func (c *Controller) setAnchor(id string) {
	c.anchor = id
	c.hasAnchor = true
}

func (c *Controller) notify() {
	if c.OnChange != nil {
		c.OnChange(c.Selected())
	}
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
