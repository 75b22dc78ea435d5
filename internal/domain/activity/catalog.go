package activity

import (
	"fmt"
	"strings"
)

// Catalog is the immutable, ordered set of activities and categories.
type Catalog struct {
	categories []string
	activities []Activity
	byID       map[string]int
}

// NewCatalog validates the definitions and builds a catalog. Activities
// keep their declared order.
func NewCatalog(categories []string, activities []Activity) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories declared", ErrInvalidCatalog)
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidCatalog)
		}
		if known[c] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, c)
		}
		known[c] = true
	}

	byID := make(map[string]int, len(activities))
	for i, a := range activities {
		switch {
		case strings.TrimSpace(a.ID) == "":
			return nil, fmt.Errorf("%w: activity #%d has no id", ErrInvalidCatalog, i+1)
		case strings.TrimSpace(a.Title) == "":
			return nil, fmt.Errorf("%w: activity %q has no title", ErrInvalidCatalog, a.ID)
		case !known[a.Category]:
			return nil, fmt.Errorf("%w: activity %q has unknown category %q", ErrInvalidCatalog, a.ID, a.Category)
		case a.MonthlyTarget < 1:
			return nil, fmt.Errorf("%w: activity %q monthly target must be at least 1", ErrInvalidCatalog, a.ID)
		case !a.AutomationTrigger.IsValid():
			return nil, fmt.Errorf("%w: activity %q has unknown trigger %q", ErrInvalidCatalog, a.ID, a.AutomationTrigger)
		}
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate activity id %q", ErrInvalidCatalog, a.ID)
		}
		byID[a.ID] = i
	}

	return &Catalog{
		categories: append([]string(nil), categories...),
		activities: append([]Activity(nil), activities...),
		byID:       byID,
	}, nil
}

// Get looks up an activity by id.
func (c *Catalog) Get(id string) (Activity, error) {
	i, ok := c.byID[id]
	if !ok {
		return Activity{}, ErrActivityNotFound
	}
	return c.activities[i], nil
}

// Activities returns a copy of all activities in catalog order.
func (c *Catalog) Activities() []Activity {
	return append([]Activity(nil), c.activities...)
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// ByCategory returns the activities of one category in catalog order.
func (c *Catalog) ByCategory(category string) []Activity {
	var out []Activity
	for _, a := range c.activities {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// WithTrigger returns the activities fed by the given trigger.
func (c *Catalog) WithTrigger(trigger AutomationTrigger) []Activity {
	var out []Activity
	for _, a := range c.activities {
		if a.AutomationTrigger == trigger {
			out = append(out, a)
		}
	}
	return out
}

// CategoryGroup is a category with its activities, used by listings.
type CategoryGroup struct {
	Category   string     `json:"category"`
	Activities []Activity `json:"activities"`
}

// Grouped returns the catalog grouped by category in display order.
func (c *Catalog) Grouped() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(c.categories))
	for _, cat := range c.categories {
		groups = append(groups, CategoryGroup{Category: cat, Activities: c.ByCategory(cat)})
	}
	return groups
}
