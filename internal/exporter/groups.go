package exporter

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "amfcli/internal/errors"
	"amfcli/internal/files"
	"amfcli/pkg/contracts/domain"
)

// DateColumn is the header of the leading output column.
const DateColumn = "DATE"

// GroupExporter writes one CSV per variable group.
type GroupExporter struct {
	writer  *CSVWriter
	manager *files.Manager
	logger  *slog.Logger
	workers int
}

// NewGroupExporter creates an exporter writing through the given file
// manager with at most workers concurrent group writes.
func NewGroupExporter(manager *files.Manager, logger *slog.Logger, workers int) *GroupExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &GroupExporter{
		writer:  NewCSVWriter(),
		manager: manager,
		logger:  logger,
		workers: workers,
	}
}

// ExportAll writes every non-empty group table to its own file. Each group
// writes a distinct filename, so exports run independently; failures are
// collected into an ExportFailures error instead of aborting the rest.
// Empty groups (all rows consumed as date rows) are skipped.
func (e *GroupExporter) ExportAll(ctx context.Context, groups []*domain.GroupTable) error {
	if err := e.manager.EnsureDir(); err != nil {
		return apperrors.WriteError("", e.manager.Dir(), err)
	}

	failures := &apperrors.ExportFailures{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	exported := 0
	for _, table := range groups {
		if table.IsEmpty() {
			e.logger.InfoContext(ctx, "Skipping empty group",
				slog.String("group", table.Group))
			continue
		}
		exported++

		table := table
		g.Go(func() error {
			if err := e.exportGroup(gctx, table); err != nil {
				mu.Lock()
				failures.Add(table.Group, e.manager.GroupCSVPath(table.Group), err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Group export finished",
		slog.Int("groups", exported),
		slog.Int("failed", len(failures.Failures)))

	if failures.Empty() {
		return nil
	}
	return failures
}

// exportGroup writes a single group table: DATE first, then the variable
// columns in first-encounter order, one row per date.
func (e *GroupExporter) exportGroup(ctx context.Context, table *domain.GroupTable) error {
	headers := make([]string, 0, len(table.Columns)+1)
	headers = append(headers, DateColumn)
	headers = append(headers, table.Columns...)

	records := make([][]string, 0, len(table.Dates))
	for _, date := range table.Dates {
		records = append(records, table.Row(date))
	}

	path := e.manager.GroupCSVPath(table.Group)
	if err := e.writer.WriteSimpleCSV(path, headers, records); err != nil {
		e.logger.ErrorContext(ctx, "Error writing group CSV",
			slog.String("group", table.Group),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}

	e.logger.DebugContext(ctx, "Saved group CSV",
		slog.String("group", table.Group),
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Int("variables", len(table.Columns)))
	return nil
}
