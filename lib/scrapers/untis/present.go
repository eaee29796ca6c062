package untis

import (
	"sort"

	"monitorboard/lib/textutil"
)

// cancelledTag is the style tag the monitor puts on the subject cell of a
// cancelled lesson. Protocol detail of the upstream service, do not change.
const cancelledTag = "cancelStyle"

// subjectCellKey indexes CellClasses, which keys cells by stringified index.
const subjectCellKey = "1"

// UnknownGroup is the bucket for rows that carry no group. It sorts among
// the real group names by its literal text.
const UnknownGroup = "(unknown)"

const placeholder = "N/A"

// RowView is the display-ready shape of a row. The underlying Row is
// never modified.
type RowView struct {
	Hour      string `json:"hour"`
	Subject   string `json:"subject"`
	Room      string `json:"room"`
	Teacher   string `json:"teacher"`
	Info      string `json:"info"`
	Cancelled bool   `json:"cancelled"`
}

// Cancelled reports whether the row carries the cancellation style tag on
// its subject cell.
func Cancelled(row Row) bool {
	for _, tag := range row.CellClasses[subjectCellKey] {
		if tag == cancelledTag {
			return true
		}
	}
	return false
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// DerivePresentation renders a row for display: positional cells fall
// back to a placeholder when empty, the info text has its markup
// stripped (empty info stays empty).
func DerivePresentation(row Row) RowView {
	return RowView{
		Hour:      orPlaceholder(row.Cell(CellHour)),
		Subject:   orPlaceholder(row.Cell(CellSubject)),
		Room:      orPlaceholder(row.Cell(CellRoom)),
		Teacher:   orPlaceholder(row.Cell(CellTeacher)),
		Info:      textutil.StripMarkup(row.Cell(CellInfo)),
		Cancelled: Cancelled(row),
	}
}

// ClassRows is one bucket of GroupByClass.
type ClassRows struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// GroupByClass partitions rows by group name. Buckets come back in
// ascending lexicographic order of the name; rows without a group land in
// the UnknownGroup bucket. Row order within a bucket is preserved.
func GroupByClass(rows []Row) []ClassRows {
	buckets := make(map[string][]Row)
	for _, row := range rows {
		name := row.Group
		if name == "" {
			name = UnknownGroup
		}
		buckets[name] = append(buckets[name], row)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	grouped := make([]ClassRows, 0, len(names))
	for _, name := range names {
		grouped = append(grouped, ClassRows{
			Name: name,
			Rows: buckets[name],
		})
	}
	return grouped
}
