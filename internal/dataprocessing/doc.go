// Package dataprocessing turns the long row-per-observation layout of an
// AmeriFlux BIF metadata sheet into wide per-group tables.
//
// LoadWorkbook reads the named sheet into observations; Pipeline.Run then
// extracts the date of each observation group, joins it back onto every
// row, drops the consumed date rows and pivots what remains into one
// GroupTable per VARIABLE_GROUP.
package dataprocessing
