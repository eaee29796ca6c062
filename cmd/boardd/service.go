package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"monitorboard/lib/scrapers/untis"
	"monitorboard/services/board"
	boarddb "monitorboard/services/board/db"
)

type groupView struct {
	Name string          `json:"name"`
	Rows []untis.RowView `json:"rows"`
}

type absentView struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type boardView struct {
	LastUpdate     string       `json:"lastUpdate"`
	Groups         []groupView  `json:"groups"`
	AbsentElements []absentView `json:"absentElements"`
}

type errorView struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// writeFetchError maps the client's failure classes onto HTTP statuses:
// an incomplete identity is our misconfiguration (400), everything else
// is an upstream problem (502).
func writeFetchError(w http.ResponseWriter, err error) {
	var configErr *untis.ConfigurationError
	if errors.As(err, &configErr) {
		writeJson(w, http.StatusBadRequest, errorView{Error: configErr.Error()})
		return
	}
	var apiErr *untis.APIError
	if errors.As(err, &apiErr) {
		writeJson(w, http.StatusBadGateway, errorView{Error: apiErr.Message, Code: apiErr.Code})
		return
	}
	writeJson(w, http.StatusBadGateway, errorView{Error: err.Error()})
}

func parseOptions(r *http.Request) (untis.QueryOptions, error) {
	query := r.URL.Query()
	opts := untis.QueryOptions{
		FilterGroups: query["class"],
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return opts, err
		}
		opts.TargetDate = date
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.DateOffset = offset
	}
	if raw := query.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.NumberOfDays = days
	}
	return opts, nil
}

func handleBoard(svc board.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := parseOptions(r)
		if err != nil {
			writeJson(w, http.StatusBadRequest, errorView{Error: err.Error()})
			return
		}

		fetched, err := svc.Fetch(r.Context(), opts)
		if err != nil {
			writeFetchError(w, err)
			return
		}

		view := boardView{
			LastUpdate:     fetched.LastUpdate,
			Groups:         []groupView{},
			AbsentElements: []absentView{},
		}
		for _, bucket := range untis.GroupByClass(fetched.Rows) {
			views := make([]untis.RowView, 0, len(bucket.Rows))
			for _, row := range bucket.Rows {
				views = append(views, untis.DerivePresentation(row))
			}
			view.Groups = append(view.Groups, groupView{Name: bucket.Name, Rows: views})
		}
		for _, e := range fetched.AbsentElements {
			kind := ""
			if len(e.Absences) > 0 {
				kind = e.Absences[0].Type
			}
			view.AbsentElements = append(view.AbsentElements, absentView{
				Name: e.ElementName,
				Type: kind,
			})
		}

		writeJson(w, http.StatusOK, view)
	}
}

type historyView struct {
	Records []boarddb.QueryRecord `json:"records"`
}

func handleHistory(svc board.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(20)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeJson(w, http.StatusBadRequest, errorView{Error: err.Error()})
				return
			}
			limit = parsed
		}

		records, err := svc.History(r.Context(), limit)
		if err != nil {
			writeJson(w, http.StatusInternalServerError, errorView{Error: err.Error()})
			return
		}
		if records == nil {
			records = []boarddb.QueryRecord{}
		}
		writeJson(w, http.StatusOK, historyView{Records: records})
	}
}
