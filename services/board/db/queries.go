package db

import (
	"context"
	"database/sql"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type CreateQueryRecordParams struct {
	QueriedAt    int64
	SchoolName   string
	FormatName   string
	Date         int64
	DateOffset   int64
	NumberOfDays int64
	FilterGroups string
	RowCount     int64
	LastUpdate   string
}

func (q *Queries) CreateQueryRecord(ctx context.Context, params CreateQueryRecordParams) error {
	_, err := q.db.ExecContext(
		ctx,
		`insert into query_history (
			queried_at, school_name, format_name, date, date_offset,
			number_of_days, filter_groups, row_count, last_update
		) values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.QueriedAt,
		params.SchoolName,
		params.FormatName,
		params.Date,
		params.DateOffset,
		params.NumberOfDays,
		params.FilterGroups,
		params.RowCount,
		params.LastUpdate,
	)
	return err
}

type QueryRecord struct {
	Id           int64
	QueriedAt    int64
	SchoolName   string
	FormatName   string
	Date         int64
	DateOffset   int64
	NumberOfDays int64
	FilterGroups string
	RowCount     int64
	LastUpdate   string
}

func (q *Queries) ListQueryRecords(ctx context.Context, limit int64) ([]QueryRecord, error) {
	rows, err := q.db.QueryContext(
		ctx,
		`select id, queried_at, school_name, format_name, date, date_offset,
			number_of_days, filter_groups, row_count, last_update
		from query_history
		order by queried_at desc, id desc
		limit ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var r QueryRecord
		err := rows.Scan(
			&r.Id,
			&r.QueriedAt,
			&r.SchoolName,
			&r.FormatName,
			&r.Date,
			&r.DateOffset,
			&r.NumberOfDays,
			&r.FilterGroups,
			&r.RowCount,
			&r.LastUpdate,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
