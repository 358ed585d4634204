package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservation_IsDateRow(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		want     bool
	}{
		{"timestamp date variable", "TIMESTAMP_DATE", true},
		{"date prefix", "DATE_START", true},
		{"plain measurement", "TA", false},
		{"empty variable never matches", "", false},
		{"lowercase does not match", "timestamp_date", false},
		{"embedded marker matches", "UPDATE_FLAG", true}, // loose substring rule, kept on purpose
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Observation{Variable: tt.variable}
			assert.Equal(t, tt.want, o.IsDateRow())
		})
	}
}

func TestGroupTable_SetValue(t *testing.T) {
	table := NewGroupTable("GRP_HEIGHTC")

	assert.True(t, table.SetValue("2020-01-01", "HEIGHTC", "1.5"))
	assert.True(t, table.SetValue("2020-01-01", "HEIGHTC_STATISTIC", "Mean"))
	assert.True(t, table.SetValue("2020-06-01", "HEIGHTC", "2.1"))

	// First value wins for a duplicate (date, variable) pair.
	assert.False(t, table.SetValue("2020-01-01", "HEIGHTC", "9.9"))
	v, ok := table.Value("2020-01-01", "HEIGHTC")
	assert.True(t, ok)
	assert.Equal(t, "1.5", v)

	assert.Equal(t, []string{"HEIGHTC", "HEIGHTC_STATISTIC"}, table.Columns)
	assert.Equal(t, []string{"2020-01-01", "2020-06-01"}, table.Dates)
}

func TestGroupTable_Row(t *testing.T) {
	table := NewGroupTable("GRP_LAI")
	table.SetValue("2020-01-01", "LAI_TOT", "3.2")
	table.SetValue("2020-06-01", "LAI_TOT", "4.0")
	table.SetValue("2020-06-01", "LAI_STATISTIC", "Mean")

	// Missing cells materialise as empty strings in column order.
	assert.Equal(t, []string{"2020-01-01", "3.2", ""}, table.Row("2020-01-01"))
	assert.Equal(t, []string{"2020-06-01", "4.0", "Mean"}, table.Row("2020-06-01"))
}

func TestGroupTable_IsEmpty(t *testing.T) {
	table := NewGroupTable("GRP_EMPTY")
	assert.True(t, table.IsEmpty())

	table.SetValue("7", "VAR", "x")
	assert.False(t, table.IsEmpty())
}
