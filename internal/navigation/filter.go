package navigation

import "strings"

// FilterInput is everything the filter needs about the current user and
// tenant.
type FilterInput struct {
	RoleLevel     int
	BusinessModel BusinessModel
	// Visibility overrides by item key: false hides an item outright, true
	// reveals a statically Hidden one. Keys absent from the map keep the
	// item's static flag.
	Visibility map[string]bool
	// ActivePath marks the matching item and expands its ancestors.
	ActivePath string
}

// Filter returns the subtree the user may see. Children are filtered first;
// a parent with no surviving children is dropped so the sidebar never shows
// a dead end.
func Filter(items []Item, in FilterInput) []Item {
	var out []Item
	for _, item := range items {
		if visible, ok := in.Visibility[item.Key]; ok && !visible {
			continue
		}
		if item.Hidden && !in.Visibility[item.Key] {
			continue
		}
		if item.MinRole != "" && in.RoleLevel < minLevelFor(item.MinRole) {
			continue
		}
		if len(item.BusinessModels) > 0 && !matchesBusinessModel(item.BusinessModels, in.BusinessModel) {
			continue
		}

		kept := item
		if len(item.Children) > 0 {
			kept.Children = Filter(item.Children, in)
			if len(kept.Children) == 0 {
				continue
			}
		}

		kept.Active = pathMatches(kept.Path, in.ActivePath)
		for _, child := range kept.Children {
			if child.Active || child.Expanded {
				kept.Expanded = true
				break
			}
		}
		out = append(out, kept)
	}
	return out
}

func matchesBusinessModel(models []BusinessModel, model BusinessModel) bool {
	for _, m := range models {
		if m == model {
			return true
		}
	}
	return false
}

// pathMatches reports whether active falls under path. "/" only matches
// itself; other paths match exactly or as a segment prefix.
func pathMatches(path, active string) bool {
	if path == "" || active == "" {
		return false
	}
	if path == active {
		return true
	}
	if path == "/" {
		return false
	}
	return strings.HasPrefix(active, path+"/")
}
