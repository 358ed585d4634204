// Package exporter writes pivoted group tables to CSV files.
//
// CSVWriter is the low-level writer around encoding/csv; GroupExporter
// fans out over variable groups, writing processed_<group>.csv per group
// with bounded parallelism. Group exports are independent: a failed group
// is recorded and reported, the rest still run.
package exporter
