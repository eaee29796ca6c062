package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monitorboard/lib/scrapers/untis"
	"monitorboard/lib/testutil"
	"monitorboard/services/board/db"

	"github.com/stretchr/testify/require"
)

const boardFixture = `{
	"payload": {
		"rows": [
			{"group": "11a", "data": ["1", "Math", "101", "MUE", ""], "cellClasses": {}},
			{"group": "11b", "data": ["1", "Bio", "102", "SCH", ""], "cellClasses": {}}
		],
		"absentElements": [],
		"lastUpdate": "21.05.2025 07:12"
	}
}`

func TestService(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/board",
		DbSchema: db.Schema,
	})
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(boardFixture))
	}))
	defer server.Close()

	service := NewService(
		untis.NewClient(untis.ClientOptions{BaseUrl: server.URL}),
		untis.SchoolIdentity{
			SchoolName:    "Test School",
			FormatName:    "Fmt",
			DepartmentIds: []int{1},
		},
		setup.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		records, err := service.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 0)
	}
	{
		fetched, err := service.Fetch(ctx, untis.QueryOptions{
			TargetDate:   time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC),
			DateOffset:   1,
			FilterGroups: []string{"11a"},
		})
		require.NoError(t, err)
		require.Len(t, fetched.Rows, 1)
		require.Equal(t, "11a", fetched.Rows[0].Group)

		records, err := service.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, int64(20250522), records[0].Date)
		require.Equal(t, int64(1), records[0].DateOffset)
		require.Equal(t, "11a", records[0].FilterGroups)
		require.Equal(t, int64(1), records[0].RowCount)
		require.Equal(t, "21.05.2025 07:12", records[0].LastUpdate)
	}
	{
		_, err := service.Fetch(ctx, untis.QueryOptions{})
		require.NoError(t, err)

		records, err := service.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)

		// newest first, unfiltered fetch kept both rows
		require.Equal(t, "", records[0].FilterGroups)
		require.Equal(t, int64(2), records[0].RowCount)
	}
}

func TestServiceWithoutHistory(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/board",
	})
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(boardFixture))
	}))
	defer server.Close()

	service := NewService(
		untis.NewClient(untis.ClientOptions{BaseUrl: server.URL}),
		untis.SchoolIdentity{
			SchoolName:    "Test School",
			FormatName:    "Fmt",
			DepartmentIds: []int{},
		},
		nil,
	)

	fetched, err := service.Fetch(context.Background(), untis.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, fetched.Rows, 2)

	records, err := service.History(context.Background(), 10)
	require.NoError(t, err)
	require.Nil(t, records)
}
