package untis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monitorboard/lib/telemetry"

	"github.com/stretchr/testify/require"
)

var testIdentity = SchoolIdentity{
	SchoolName:    "Test School",
	FormatName:    "Fmt",
	DepartmentIds: []int{1},
}

const boardFixture = `{
	"payload": {
		"rows": [
			{"group": "11a", "data": ["1", "Math", "101", "MUE", ""], "cellClasses": {}},
			{"group": "11b", "data": ["1", "Bio", "102", "SCH", ""], "cellClasses": {}},
			{"group": "11a", "data": ["2", "Eng", "103", "KRA", "Room <b>changed</b>"], "cellClasses": {"1": ["cancelStyle"]}}
		],
		"absentElements": [
			{"elementName": "MUE", "absences": [{"type": "Illness", "startTime": 800}]}
		],
		"lastUpdate": "21.05.2025 07:12"
	}
}`

func TestFetchBoard(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	var gotBody map[string]any
	var gotHeader http.Header
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		gotQuery = r.URL.Query().Get("school")
		err := json.NewDecoder(r.Body).Decode(&gotBody)
		require.NoError(t, err)

		w.Header().Set("content-type", "application/json")
		w.Write([]byte(boardFixture))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	board, err := client.FetchBoard(context.Background(), testIdentity, QueryOptions{
		TargetDate:   time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC),
		DateOffset:   1,
		FilterGroups: []string{"11a"},
	})
	require.NoError(t, err)

	// outbound request shape
	require.Equal(t, "XMLHttpRequest", gotHeader.Get("x-requested-with"))
	require.Contains(t, gotHeader.Get("content-type"), "application/json")
	require.Equal(t, "Test School", gotQuery)
	require.Equal(t, float64(20250522), gotBody["date"])
	require.Equal(t, float64(1), gotBody["numberOfDays"])
	require.Equal(t, true, gotBody["strikethrough"])
	require.Equal(t, float64(-1), gotBody["departmentElementType"])

	// only 11a rows survive the filter, order preserved
	require.Len(t, board.Rows, 2)
	require.Equal(t, "11a", board.Rows[0].Group)
	require.Equal(t, "11a", board.Rows[1].Group)
	require.Equal(t, "Math", board.Rows[0].Data[CellSubject])
	require.Equal(t, "Eng", board.Rows[1].Data[CellSubject])

	// absent elements are never filtered
	require.Len(t, board.AbsentElements, 1)
	require.Equal(t, "MUE", board.AbsentElements[0].ElementName)
	require.Equal(t, "Illness", board.AbsentElements[0].Absences[0].Type)
	require.Equal(t, "21.05.2025 07:12", board.LastUpdate)
}

func TestFetchBoardApiError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		// the endpoint reports domain errors inside 200 bodies
		w.Write([]byte(`{"error":{"code":-1,"message":"not found"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	board, err := client.FetchBoard(context.Background(), testIdentity, QueryOptions{})
	require.Nil(t, board)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, -1, apiErr.Code)
	require.Equal(t, "not found", apiErr.Message)
}

func TestFetchBoardBadStatus(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.FetchBoard(context.Background(), testIdentity, QueryOptions{})

	transportErr, ok := err.(*TransportError)
	require.True(t, ok)
	require.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
	require.Equal(t, "maintenance", transportErr.Body)
}

func TestFetchBoardBadJson(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.FetchBoard(context.Background(), testIdentity, QueryOptions{})

	_, ok := err.(*ParseError)
	require.True(t, ok)
}

func TestFetchBoardConnectionFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	// nothing listens here
	client := NewClient(ClientOptions{BaseUrl: "http://127.0.0.1:1"})
	_, err := client.FetchBoard(context.Background(), testIdentity, QueryOptions{})

	transportErr, ok := err.(*TransportError)
	require.True(t, ok)
	require.Error(t, transportErr.Err)
	require.Zero(t, transportErr.StatusCode)
}

func TestFetchBoardRejectsIncompleteIdentity(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/untis")
	defer cleanup()

	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.FetchBoard(context.Background(), SchoolIdentity{}, QueryOptions{})

	_, ok := err.(*ConfigurationError)
	require.True(t, ok)
	// validation happens before any network activity
	require.False(t, requested)
}
