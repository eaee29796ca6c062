package main

import (
	configsqlite "monitorboard/lib/configutil/sqlite"
)

type Config struct {
	Port          int                 `json:"port"`
	SchoolName    string              `json:"school_name"`
	FormatName    string              `json:"format_name"`
	DepartmentIds []int               `json:"department_ids"`
	BaseUrl       string              `json:"base_url"`
	History       configsqlite.Struct `json:"history"`
}
