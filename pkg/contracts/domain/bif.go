package domain

import (
	"strings"
)

// DateMarker is the substring that tags a VARIABLE as carrying the date of
// its observation group. The match is case-sensitive, exactly as the BADM
// exports use it (TIMESTAMP_DATE, DATE_START, ...).
const DateMarker = "DATE"

// Observation is one row of the AMF-BIF sheet: a single measured quantity
// recorded for a site as part of an observation group. All attributes come
// off the sheet as text; DataValue stays opaque because it may hold a
// number, a date, or free text depending on the variable.
type Observation struct {
	SiteID        string `json:"site_id"`
	GroupID       string `json:"group_id"`
	VariableGroup string `json:"variable_group"`
	Variable      string `json:"variable"`
	DataValue     string `json:"data_value"`
}

// IsDateRow reports whether this observation carries the date of its group.
// An empty Variable never matches.
func (o Observation) IsDateRow() bool {
	return strings.Contains(o.Variable, DateMarker)
}

// GroupDate associates an observation group with the date extracted from
// its DATE-tagged row. At most one GroupDate exists per GroupID; extra
// DATE rows for the same group are dropped by the pipeline.
type GroupDate struct {
	GroupID string `json:"group_id"`
	Date    string `json:"date"`
}

// MergedObservation is an Observation with its resolved date attached.
// After the fill step Date is never empty: groups without a DATE row fall
// back to the GroupID itself.
type MergedObservation struct {
	Observation
	Date string `json:"date"`
}

// GroupTable is one VARIABLE_GROUP pivoted wide: one row per date, one
// column per variable. Columns keep the order in which variables first
// appeared in the sheet; Dates are sorted by the pipeline.
type GroupTable struct {
	Group   string   `json:"group"`
	Columns []string `json:"columns"`
	Dates   []string `json:"dates"`

	// Cells maps date -> variable -> value.
	Cells map[string]map[string]string `json:"cells"`
}

// NewGroupTable creates an empty pivot table for the given group.
func NewGroupTable(group string) *GroupTable {
	return &GroupTable{
		Group: group,
		Cells: make(map[string]map[string]string),
	}
}

// Value returns the cell for the given date and variable.
func (t *GroupTable) Value(date, variable string) (string, bool) {
	row, ok := t.Cells[date]
	if !ok {
		return "", false
	}
	v, ok := row[variable]
	return v, ok
}

// SetValue stores a cell, keeping the first value written for a
// (date, variable) pair and reporting whether the write took effect.
func (t *GroupTable) SetValue(date, variable, value string) bool {
	row, ok := t.Cells[date]
	if !ok {
		row = make(map[string]string)
		t.Cells[date] = row
		t.Dates = append(t.Dates, date)
	}
	if _, exists := row[variable]; exists {
		return false
	}
	row[variable] = value
	if !t.hasColumn(variable) {
		t.Columns = append(t.Columns, variable)
	}
	return true
}

// Row materialises one output row: the date followed by the cell for each
// column, empty string where the group never recorded that variable on
// that date.
func (t *GroupTable) Row(date string) []string {
	row := make([]string, 0, len(t.Columns)+1)
	row = append(row, date)
	for _, col := range t.Columns {
		v, _ := t.Value(date, col)
		row = append(row, v)
	}
	return row
}

// IsEmpty reports whether the table pivoted to nothing, which happens when
// every row of the group was consumed as a DATE row.
func (t *GroupTable) IsEmpty() bool {
	return len(t.Dates) == 0
}

func (t *GroupTable) hasColumn(variable string) bool {
	for _, col := range t.Columns {
		if col == variable {
			return true
		}
	}
	return false
}
