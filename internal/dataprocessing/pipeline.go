package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"amfcli/pkg/contracts/domain"
)

// Pipeline runs the extract-merge-pivot pass over loaded observations.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a pipeline logging to the given logger.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Result holds the pivoted group tables and the data-quality warnings
// collected along the way. Warnings do not stop the run; the caller
// reports them at the end.
type Result struct {
	Groups   []*domain.GroupTable
	Warnings []string
}

// Run executes the pipeline stages in order: index group dates, merge them
// onto every observation with GROUP_ID fallback, drop the consumed date
// rows, pivot per variable group. The merge preserves the row count of its
// input: duplicate date rows for one group collapse to the first match
// instead of fanning out.
func (p *Pipeline) Run(ctx context.Context, observations []domain.Observation) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}

	dates := p.extractDates(ctx, observations, result)
	merged := p.mergeDates(observations, dates)
	filtered := p.filterDateRows(merged)
	result.Groups = p.pivotGroups(ctx, filtered)

	p.logger.InfoContext(ctx, "Pipeline complete",
		slog.Int("observations", len(observations)),
		slog.Int("date_rows", len(dates)),
		slog.Int("groups", len(result.Groups)),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

// extractDates derives the (GROUP_ID, DATE) pair table from DATE-tagged
// rows. The first DATE-tagged row per GROUP_ID wins; later ones are
// dropped with a warning, because a naive join on a duplicated key would
// fan out every other row of that group.
func (p *Pipeline) extractDates(ctx context.Context, observations []domain.Observation, result *Result) []domain.GroupDate {
	var dates []domain.GroupDate
	kept := make(map[string]string)
	seen := make(map[string]int)

	for _, obs := range observations {
		if !obs.IsDateRow() {
			continue
		}
		seen[obs.GroupID]++
		if seen[obs.GroupID] > 1 {
			continue
		}
		kept[obs.GroupID] = obs.DataValue
		dates = append(dates, domain.GroupDate{GroupID: obs.GroupID, Date: obs.DataValue})
		p.logger.DebugContext(ctx, "Date row matched",
			slog.String("group_id", obs.GroupID),
			slog.String("variable", obs.Variable),
			slog.String("date", obs.DataValue))
	}

	for groupID, count := range seen {
		if count > 1 {
			warning := fmt.Sprintf("group %s carries %d DATE rows; kept the first (%s)",
				groupID, count, kept[groupID])
			result.Warnings = append(result.Warnings, warning)
			p.logger.WarnContext(ctx, "Ambiguous date rows for group",
				slog.String("group_id", groupID),
				slog.Int("date_rows", count),
				slog.String("kept", kept[groupID]))
		}
	}

	return dates
}

// mergeDates left-joins the date table onto every observation and fills
// the gaps: a group without a date row gets its own GROUP_ID as the date.
// Every input row produces exactly one merged row and Date is never empty.
func (p *Pipeline) mergeDates(observations []domain.Observation, dates []domain.GroupDate) []domain.MergedObservation {
	index := make(map[string]string, len(dates))
	for _, d := range dates {
		index[d.GroupID] = d.Date
	}

	merged := make([]domain.MergedObservation, 0, len(observations))
	for _, obs := range observations {
		date, ok := index[obs.GroupID]
		if !ok || date == "" {
			date = obs.GroupID
		}
		merged = append(merged, domain.MergedObservation{
			Observation: obs,
			Date:        date,
		})
	}
	return merged
}

// filterDateRows drops the rows whose value was folded into the date
// column; left in place they would surface as spurious pivot columns.
func (p *Pipeline) filterDateRows(merged []domain.MergedObservation) []domain.MergedObservation {
	filtered := merged[:0:0]
	for _, m := range merged {
		if m.IsDateRow() {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// pivotGroups builds one wide table per variable group. Columns keep the
// order variables were first encountered in; rows are sorted by date with
// numeric keys ascending ahead of non-numeric ones. The first value wins
// when a (date, variable) pair repeats within a group.
func (p *Pipeline) pivotGroups(ctx context.Context, filtered []domain.MergedObservation) []*domain.GroupTable {
	var order []string
	tables := make(map[string]*domain.GroupTable)

	for _, m := range filtered {
		table, ok := tables[m.VariableGroup]
		if !ok {
			table = domain.NewGroupTable(m.VariableGroup)
			tables[m.VariableGroup] = table
			order = append(order, m.VariableGroup)
		}
		if !table.SetValue(m.Date, m.Variable, m.DataValue) {
			p.logger.DebugContext(ctx, "Duplicate cell discarded",
				slog.String("group", m.VariableGroup),
				slog.String("date", m.Date),
				slog.String("variable", m.Variable),
				slog.String("discarded_value", m.DataValue))
		}
	}

	groups := make([]*domain.GroupTable, 0, len(order))
	for _, name := range order {
		table := tables[name]
		sortDates(table.Dates)
		groups = append(groups, table)
	}
	return groups
}

// sortDates orders row keys deterministically: numeric values ascending
// first, everything else lexicographically after them. GROUP_ID fallback
// dates are numeric in practice, real dates are ISO strings, so both kinds
// end up in their natural order.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		fi, erri := strconv.ParseFloat(dates[i], 64)
		fj, errj := strconv.ParseFloat(dates[j], 64)
		switch {
		case erri == nil && errj == nil:
			if fi != fj {
				return fi < fj
			}
			return dates[i] < dates[j]
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return dates[i] < dates[j]
		}
	})
}
