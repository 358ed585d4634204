package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "amfcli/internal/errors"
	"amfcli/internal/infrastructure"
	"amfcli/pkg/contracts/domain"
)

// Required column headers of the AMF-BIF sheet, matched exactly.
const (
	ColSiteID        = "SITE_ID"
	ColGroupID       = "GROUP_ID"
	ColVariableGroup = "VARIABLE_GROUP"
	ColVariable      = "VARIABLE"
	ColDataValue     = "DATAVALUE"
)

// RequiredColumns lists the headers the loader projects out of the sheet.
var RequiredColumns = []string{ColSiteID, ColGroupID, ColVariableGroup, ColVariable, ColDataValue}

// LoadWorkbook reads the named sheet of a BIF workbook and projects the
// required columns into observations. The first sheet row is the header;
// rows that are entirely empty are skipped. A missing file or sheet is a
// load error, missing required columns a schema error — both fatal.
func LoadWorkbook(ctx context.Context, path, sheet string) ([]domain.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.LoadError(path, sheet, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.LoadError(path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.SchemaError(RequiredColumns)
	}

	columns, missing := mapColumns(rows[0])
	if len(missing) > 0 {
		return nil, apperrors.SchemaError(missing)
	}

	observations := make([]domain.Observation, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		observations = append(observations, domain.Observation{
			SiteID:        cell(row, columns[ColSiteID]),
			GroupID:       cell(row, columns[ColGroupID]),
			VariableGroup: cell(row, columns[ColVariableGroup]),
			Variable:      cell(row, columns[ColVariable]),
			DataValue:     cell(row, columns[ColDataValue]),
		})
	}

	infrastructure.LoggerFromContext(ctx).DebugContext(ctx, "Workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("observations", len(observations)))

	return observations, nil
}

// mapColumns maps required header names to their column index and returns
// any headers that could not be found. Header cells are trimmed but the
// names themselves are matched case- and spelling-exact.
func mapColumns(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(RequiredColumns))
	for idx, name := range header {
		name = strings.TrimSpace(name)
		if _, exists := columns[name]; exists {
			continue
		}
		for _, required := range RequiredColumns {
			if name == required {
				columns[name] = idx
				break
			}
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	return columns, missing
}

// cell safely reads one cell; excelize trims trailing empty cells from
// rows, so short rows read as empty strings.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
