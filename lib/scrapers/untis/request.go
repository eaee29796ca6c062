package untis

import (
	"net/url"
	"time"

	"monitorboard/lib/chrono"
)

const DefaultBaseUrl = "https://hepta.webuntis.com/WebUntis"

const substitutionPath = "/monitor/substitution/data"

// defaultFlags is the display/behavior block the monitor endpoint expects
// verbatim on every request. The semantics live upstream; treat this as an
// opaque constant and never mutate it after init.
var defaultFlags = map[string]any{
	"strikethrough":              true,
	"mergeBlocks":                true,
	"showOnlyFutureSub":          true,
	"showBreakSupervisions":      false,
	"showTeacher":                true,
	"showClass":                  false,
	"showHour":                   true,
	"showInfo":                   true,
	"showRoom":                   true,
	"showSubject":                false,
	"groupBy":                    1,
	"hideAbsent":                 false,
	"departmentElementType":      -1,
	"hideCancelWithSubstitution": true,
	"hideCancelCausedByEvent":    false,
	"showTime":                   false,
	"showSubstText":              true,
	"showAbsentElements":         []int{1},
	"showAffectedElements":       []int{1},
	"showUnitTime":               false,
	"showMessages":               true,
	"showStudentgroup":           false,
	"enableSubstitutionFrom":     false,
	"showSubstitutionFrom":       1530,
	"showTeacherOnEvent":         false,
	"showAbsentTeacher":          true,
	"strikethroughAbsentTeacher": true,
	"activityTypeIds":            []int{},
	"showEvent":                  true,
	"showCancel":                 true,
	"showOnlyCancel":             false,
	"showSubstTypeColor":         false,
	"showExamSupervision":        false,
	"showUnheraldedExams":        false,
}

func (identity SchoolIdentity) validate() error {
	if identity.SchoolName == "" {
		return &ConfigurationError{Field: "schoolName"}
	}
	if identity.FormatName == "" {
		return &ConfigurationError{Field: "formatName"}
	}
	if identity.DepartmentIds == nil {
		return &ConfigurationError{Field: "departmentIds"}
	}
	return nil
}

// buildBody assembles the outbound payload. Precedence, later wins:
// default flags < identity fields < computed date fields.
func buildBody(identity SchoolIdentity, opts QueryOptions) map[string]any {
	target := opts.TargetDate
	if target.IsZero() {
		target = time.Now()
	}
	queryDate := chrono.ApplyOffset(target, opts.DateOffset)

	days := opts.NumberOfDays
	if days < 1 {
		days = 1
	}

	body := make(map[string]any, len(defaultFlags)+6)
	for k, v := range defaultFlags {
		body[k] = v
	}
	body["schoolName"] = identity.SchoolName
	body["formatName"] = identity.FormatName
	body["departmentIds"] = identity.DepartmentIds
	body["date"] = chrono.EncodeDate(queryDate)
	body["dateOffset"] = opts.DateOffset
	body["numberOfDays"] = days
	return body
}

func substitutionLink(base string, schoolName string) string {
	query := url.Values{}
	query.Add("school", schoolName)
	return base + substitutionPath + "?" + query.Encode()
}
