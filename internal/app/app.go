package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"mtocli/internal/catalog"
	"mtocli/internal/dataprocessing"
	"mtocli/internal/exporter"
	"mtocli/internal/mto"
)

// App runs one conversion: the master catalog plus a set of type files in,
// one workbook out. A failed type file becomes an error sheet; only a
// missing or malformed master aborts the run.
type App struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *App {
	return &App{logger: logger}
}

// Run processes every input against the master catalog and writes the
// output workbook to outPath.
func (a *App) Run(masterPath string, inputs []string, outPath string) error {
	cat, err := catalog.Load(masterPath)
	if err != nil {
		return fmt.Errorf("failed to load master catalog: %w", err)
	}
	a.logger.Info("master catalog loaded",
		slog.String("path", masterPath),
		slog.Int("records", len(cat.Records)))

	builder, err := exporter.NewBuilder()
	if err != nil {
		return fmt.Errorf("failed to create output workbook: %w", err)
	}
	defer builder.Close()

	totals := mto.NewTotals()
	for _, path := range inputs {
		base := fileBase(path)
		if err := a.processFile(builder, cat, totals, path, base); err != nil {
			a.logger.Warn("file failed, continuing with error sheet",
				slog.String("path", path),
				slog.String("error", err.Error()))
			if sheetErr := builder.AddErrorSheet(base+"_ERROR", path, err); sheetErr != nil {
				return fmt.Errorf("failed to record error sheet for %s: %w", path, sheetErr)
			}
		}
	}

	if err := builder.WriteSummary(cat, totals); err != nil {
		a.logger.Warn("summary sheet failed",
			slog.String("error", err.Error()))
		if sheetErr := builder.AddErrorSheet("Summary_ERROR", outPath, err); sheetErr != nil {
			return fmt.Errorf("failed to record summary error sheet: %w", sheetErr)
		}
	}

	if err := builder.Save(outPath); err != nil {
		return err
	}
	a.logger.Info("workbook written", slog.String("path", outPath))
	return nil
}

func (a *App) processFile(builder *exporter.Builder, cat *catalog.Catalog, totals *mto.Totals, path, base string) error {
	table, err := dataprocessing.ReadFile(path)
	if err != nil {
		return err
	}

	kind := mto.Classify(table)
	title := kind.SheetTitle(base)
	a.logger.Info("processing type file",
		slog.String("path", path),
		slog.String("family", kind.String()),
		slog.Int("rows", len(table.Rows)))

	groups, err := mto.NewResolver(kind, title).Resolve(table, cat)
	if err != nil {
		return err
	}

	sheet, err := builder.AddSheet(base)
	if err != nil {
		return err
	}
	if err := sheet.WriteTitle(title); err != nil {
		return err
	}
	if err := sheet.WriteHeader(); err != nil {
		return err
	}
	if err := sheet.WriteGroups(groups); err != nil {
		return err
	}

	totals.AddGroups(groups)
	return nil
}

func fileBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
