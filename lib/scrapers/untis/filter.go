package untis

import "sort"

// FilterRows returns the rows whose group is one of the given groups,
// keeping the original order. Matching is exact string equality.
//
// An empty filter means "show everything". This is a deliberate branch:
// falling through to the membership check would silently turn an empty
// set into "show nothing".
func FilterRows(rows []Row, groups []string) []Row {
	if len(groups) == 0 {
		return rows
	}

	member := make(map[string]bool, len(groups))
	for _, g := range groups {
		member[g] = true
	}

	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if member[row.Group] {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// GroupNames returns the distinct group names on the board, sorted.
// Rows without a group are skipped.
func GroupNames(rows []Row) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if row.Group == "" || seen[row.Group] {
			continue
		}
		seen[row.Group] = true
		names = append(names, row.Group)
	}
	sort.Strings(names)
	return names
}
