package untis

import (
	"encoding/json"
	"time"
)

// SchoolIdentity names the monitor board to query. All fields are supplied
// by the caller, nothing here is baked into the client.
type SchoolIdentity struct {
	SchoolName    string `json:"schoolName"`
	FormatName    string `json:"formatName"`
	DepartmentIds []int  `json:"departmentIds"`
}

// QueryOptions selects what slice of the board to fetch and how to narrow
// it down client-side.
type QueryOptions struct {
	// TargetDate is the base date of the query. The zero value means
	// "now at call time".
	TargetDate time.Time
	// DateOffset shifts TargetDate by a number of days, negative values
	// go backwards.
	DateOffset int
	// NumberOfDays is forwarded to the endpoint verbatim. Values < 1
	// default to 1. Multi-day responses are passed through as-is.
	NumberOfDays int
	// FilterGroups narrows the board to rows whose group matches one of
	// these exactly. Empty means no filtering.
	FilterGroups []string
}

// Board is the substitution board as returned by the monitor endpoint,
// with rows already narrowed down when a filter was requested.
type Board struct {
	Rows           []Row           `json:"rows"`
	AbsentElements []AbsentElement `json:"absentElements"`
	LastUpdate     string          `json:"lastUpdate"`
}

// Positions of the cells inside Row.Data.
const (
	CellHour = iota
	CellSubject
	CellRoom
	CellTeacher
	CellInfo
)

// Row is a single board entry. Cancellation is not a field of its own,
// the endpoint signals it through a style tag on the subject cell (see
// Cancelled).
type Row struct {
	Group string   `json:"group"`
	Data  []string `json:"data"`
	// CellClasses maps a cell index (as a string) to the style tags the
	// monitor would apply to that cell.
	CellClasses map[string][]string `json:"cellClasses"`
}

// Cell returns the positional data cell at index i, or "" when the row
// has fewer cells.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Data) {
		return ""
	}
	return r.Data[i]
}

// AbsentElement reports an entity (typically a teacher) absent for the
// queried period. It is board-wide information, not scoped to a class,
// which is why it is never group-filtered.
type AbsentElement struct {
	ElementName string    `json:"elementName"`
	Absences    []Absence `json:"absences"`
}

// Absence keeps the raw upstream object around since only the type is
// rendered but embedding consumers may want the rest.
type Absence struct {
	Type string
	Raw  json.RawMessage
}

func (a *Absence) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	a.Type = probe.Type
	a.Raw = append(a.Raw[:0], data...)
	return nil
}

func (a Absence) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: a.Type})
}

type envelope struct {
	Payload *Board `json:"payload"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
