package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"monitorboard/lib/configutil"
	"monitorboard/lib/scrapers/untis"
	"monitorboard/lib/serviceutil"
	"monitorboard/lib/telemetry"
	"monitorboard/services/board"
	boarddb "monitorboard/services/board/db"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(false)
	err := telemetry.SetupFromEnv(ctx, "boardd")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
	} else {
		defer telemetry.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	config, err := configutil.ReadConfig[Config]("boardd.json5")
	if err != nil {
		serviceutil.Fatal("failed to read boardd.json5", err)
	}
	port := config.Port
	if port == 0 {
		port = 8460
	}

	var database *sql.DB
	if config.History.File != "" {
		database, err = config.History.OpenDB(boarddb.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open history db", err)
		}
		defer database.Close()
	}

	departments := config.DepartmentIds
	if departments == nil {
		departments = []int{}
	}
	svc := board.NewService(
		untis.NewClient(untis.ClientOptions{BaseUrl: config.BaseUrl}),
		untis.SchoolIdentity{
			SchoolName:    config.SchoolName,
			FormatName:    config.FormatName,
			DepartmentIds: departments,
		},
		database,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /board", handleBoard(svc))
	mux.HandleFunc("GET /history", handleHistory(svc))
	go serviceutil.StartHttpServer(port, mux)

	<-ctx.Done()
}
