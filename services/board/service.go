package board

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"monitorboard/lib/chrono"
	"monitorboard/lib/scrapers/untis"
	"monitorboard/services/board/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/board")

// Service ties a monitor client to a school identity and keeps a local
// history of the queries made. The database is optional; without one the
// service just fetches.
type Service struct {
	client   untis.Client
	identity untis.SchoolIdentity
	db       *sql.DB
	qry      *db.Queries
}

func NewService(client untis.Client, identity untis.SchoolIdentity, database *sql.DB) Service {
	s := Service{
		client:   client,
		identity: identity,
		db:       database,
	}
	if database != nil {
		s.qry = db.New(database)
	}
	return s
}

// Fetch retrieves the board for the configured school. A history record
// is written on success; failing to write it does not fail the fetch.
func (s Service) Fetch(ctx context.Context, opts untis.QueryOptions) (*untis.Board, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("school", s.identity.SchoolName),
		attribute.Int("date_offset", opts.DateOffset),
		attribute.StringSlice("filter_groups", opts.FilterGroups),
	)

	board, err := s.client.FetchBoard(ctx, s.identity, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.qry != nil {
		s.recordQuery(ctx, opts, board)
	}
	return board, nil
}

func (s Service) recordQuery(ctx context.Context, opts untis.QueryOptions, board *untis.Board) {
	target := opts.TargetDate
	if target.IsZero() {
		target = time.Now()
	}
	queryDate := chrono.ApplyOffset(target, opts.DateOffset)

	days := opts.NumberOfDays
	if days < 1 {
		days = 1
	}

	err := s.qry.CreateQueryRecord(ctx, db.CreateQueryRecordParams{
		QueriedAt:    time.Now().Unix(),
		SchoolName:   s.identity.SchoolName,
		FormatName:   s.identity.FormatName,
		Date:         int64(chrono.EncodeDate(queryDate)),
		DateOffset:   int64(opts.DateOffset),
		NumberOfDays: int64(days),
		FilterGroups: strings.Join(opts.FilterGroups, ","),
		RowCount:     int64(len(board.Rows)),
		LastUpdate:   board.LastUpdate,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record query history", "err", err)
	}
}

// History returns the most recent query records, newest first.
func (s Service) History(ctx context.Context, limit int64) ([]db.QueryRecord, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	if s.qry == nil {
		return nil, nil
	}

	records, err := s.qry.ListQueryRecords(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return records, nil
}
