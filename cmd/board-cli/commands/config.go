package commands

import (
	"database/sql"
	"time"

	"monitorboard/lib/configutil"
	configsqlite "monitorboard/lib/configutil/sqlite"
	"monitorboard/lib/scrapers/untis"
	"monitorboard/lib/serviceutil"
	"monitorboard/services/board"
	boarddb "monitorboard/services/board/db"
)

type Config struct {
	SchoolName    string              `json:"school_name"`
	FormatName    string              `json:"format_name"`
	DepartmentIds []int               `json:"department_ids"`
	BaseUrl       string              `json:"base_url"`
	History       configsqlite.Struct `json:"history"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config.json5", err)
	}
	return cfg
}

func (cfg Config) identity() untis.SchoolIdentity {
	departments := cfg.DepartmentIds
	if departments == nil {
		departments = []int{}
	}
	return untis.SchoolIdentity{
		SchoolName:    cfg.SchoolName,
		FormatName:    cfg.FormatName,
		DepartmentIds: departments,
	}
}

// openHistory returns nil when no history file is configured; the
// service then skips recording.
func (cfg Config) openHistory() *sql.DB {
	if cfg.History.File == "" {
		return nil
	}
	database, err := cfg.History.OpenDB(boarddb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open history db", err)
	}
	return database
}

func (cfg Config) service() (board.Service, func()) {
	client := untis.NewClient(untis.ClientOptions{BaseUrl: cfg.BaseUrl})
	database := cfg.openHistory()
	cleanup := func() {}
	if database != nil {
		cleanup = func() { database.Close() }
	}
	return board.NewService(client, cfg.identity(), database), cleanup
}

func parseQueryDate(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		serviceutil.Fatal("dates must look like 2006-01-02", err)
	}
	return parsed
}
