// Package checklist defines the immutable checklist content: categories,
// each holding checklists, each holding items. Content is loaded once at
// startup and never mutated; completion state lives elsewhere and refers to
// content by the three-level ID path.
package checklist

// Item is a single actionable line in a checklist.
type Item struct {
	ID       string `yaml:"id"`
	Text     string `yaml:"text"`
	Response string `yaml:"response,omitempty"` // challenge/response answer, e.g. "ON", "SET"
	Required bool   `yaml:"required,omitempty"`
	Notes    string `yaml:"notes,omitempty"` // markdown, shown on demand
}

// Checklist is an ordered list of items.
type Checklist struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Category groups related checklists under one menu heading.
type Category struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Group      string      `yaml:"group,omitempty"`
	Checklists []Checklist `yaml:"checklists"`
}

// Library is the full content set for a session, in menu order.
type Library struct {
	Categories []Category
}

// Category returns the category with the given ID.
func (l *Library) Category(id string) (Category, bool) {
	for _, cat := range l.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Checklist returns one checklist by its ID path.
func (l *Library) Checklist(categoryID, checklistID string) (Checklist, bool) {
	cat, ok := l.Category(categoryID)
	if !ok {
		return Checklist{}, false
	}
	for _, list := range cat.Checklists {
		if list.ID == checklistID {
			return list, true
		}
	}
	return Checklist{}, false
}

// Item returns one item by its ID path.
func (l *Library) Item(categoryID, checklistID, itemID string) (Item, bool) {
	list, ok := l.Checklist(categoryID, checklistID)
	if !ok {
		return Item{}, false
	}
	for _, item := range list.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Groups returns the distinct category groups in first-seen order. Categories
// with no group are reported under the empty string.
func (l *Library) Groups() []string {
	var groups []string
	seen := map[string]struct{}{}
	for _, cat := range l.Categories {
		if _, ok := seen[cat.Group]; ok {
			continue
		}
		seen[cat.Group] = struct{}{}
		groups = append(groups, cat.Group)
	}
	return groups
}

// CategoriesInGroup returns the categories tagged with the given group, in
// menu order.
func (l *Library) CategoriesInGroup(group string) []Category {
	var out []Category
	for _, cat := range l.Categories {
		if cat.Group == group {
			out = append(out, cat)
		}
	}
	return out
}

// CategoryIDs returns every category ID in menu order.
func (l *Library) CategoryIDs() []string {
	ids := make([]string, 0, len(l.Categories))
	for _, cat := range l.Categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

// CompleteFunc reports whether one item currently counts as complete. The
// state coordinator's ItemComplete method satisfies it.
type CompleteFunc func(categoryID, checklistID, itemID string) bool

// Progress returns how many of a checklist's items are complete.
func (l *Library) Progress(categoryID, checklistID string, complete CompleteFunc) (done, total int) {
	list, ok := l.Checklist(categoryID, checklistID)
	if !ok {
		return 0, 0
	}
	for _, item := range list.Items {
		total++
		if complete(categoryID, checklistID, item.ID) {
			done++
		}
	}
	return done, total
}

// CategoryProgress sums Progress over every checklist in a category.
func (l *Library) CategoryProgress(categoryID string, complete CompleteFunc) (done, total int) {
	cat, ok := l.Category(categoryID)
	if !ok {
		return 0, 0
	}
	for _, list := range cat.Checklists {
		d, n := l.Progress(categoryID, list.ID, complete)
		done += d
		total += n
	}
	return done, total
}
