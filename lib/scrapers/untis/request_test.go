package untis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateIdentity(t *testing.T) {
	testCases := []struct {
		name     string
		identity SchoolIdentity
		field    string
	}{
		{
			name:     "missing school name",
			identity: SchoolIdentity{FormatName: "Fmt", DepartmentIds: []int{1}},
			field:    "schoolName",
		},
		{
			name:     "missing format name",
			identity: SchoolIdentity{SchoolName: "Test School", DepartmentIds: []int{1}},
			field:    "formatName",
		},
		{
			name:     "missing department ids",
			identity: SchoolIdentity{SchoolName: "Test School", FormatName: "Fmt"},
			field:    "departmentIds",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			err := test.identity.validate()
			require.Error(t, err)

			configErr, ok := err.(*ConfigurationError)
			require.True(t, ok)
			require.Equal(t, test.field, configErr.Field)
		})
	}

	identity := SchoolIdentity{
		SchoolName:    "Test School",
		FormatName:    "Fmt",
		DepartmentIds: []int{},
	}
	require.NoError(t, identity.validate())
}

func TestBuildBody(t *testing.T) {
	identity := SchoolIdentity{
		SchoolName:    "Test School",
		FormatName:    "Fmt",
		DepartmentIds: []int{1, 2},
	}

	body := buildBody(identity, QueryOptions{
		TargetDate: time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC),
		DateOffset: 1,
	})

	// date fields win over everything, identity comes through verbatim
	require.Equal(t, 20250522, body["date"])
	require.Equal(t, 1, body["dateOffset"])
	require.Equal(t, 1, body["numberOfDays"])
	require.Equal(t, "Test School", body["schoolName"])
	require.Equal(t, "Fmt", body["formatName"])
	require.Equal(t, []int{1, 2}, body["departmentIds"])

	// the opaque flag block is sent verbatim
	require.Equal(t, true, body["strikethrough"])
	require.Equal(t, -1, body["departmentElementType"])
	require.Equal(t, 1530, body["showSubstitutionFrom"])
	require.Equal(t, []int{1}, body["showAbsentElements"])
	for flag := range defaultFlags {
		require.Contains(t, body, flag)
	}
}

func TestBuildBodyDoesNotMutateDefaults(t *testing.T) {
	identity := SchoolIdentity{
		SchoolName:    "Test School",
		FormatName:    "Fmt",
		DepartmentIds: []int{},
	}

	before := len(defaultFlags)
	buildBody(identity, QueryOptions{NumberOfDays: 4})
	buildBody(identity, QueryOptions{DateOffset: -3})

	require.Len(t, defaultFlags, before)
	require.NotContains(t, defaultFlags, "date")
	require.NotContains(t, defaultFlags, "schoolName")
}

func TestBuildBodyDefaults(t *testing.T) {
	identity := SchoolIdentity{
		SchoolName:    "Test School",
		FormatName:    "Fmt",
		DepartmentIds: []int{},
	}

	// zero target date means "now"
	body := buildBody(identity, QueryOptions{})
	today := time.Now()
	expected := today.Year()*10000 + int(today.Month())*100 + today.Day()
	require.Equal(t, expected, body["date"])
	require.Equal(t, 0, body["dateOffset"])
	require.Equal(t, 1, body["numberOfDays"])
}

func TestSubstitutionLink(t *testing.T) {
	link := substitutionLink(DefaultBaseUrl, "Test School")
	require.Equal(
		t,
		DefaultBaseUrl+"/monitor/substitution/data?school=Test+School",
		link,
	)
}
