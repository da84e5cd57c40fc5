package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// Header is the fixed column order of the published file.
var Header = []string{
	"Brand",
	"Family",
	"Name",
	"Ticker",
	"Base",
	"Quote",
	"Dissemination",
	"Launch Date",
	"Inception Date",
	"Exchanges",
	"Calculation Window",
	"Factsheet",
}

// Writer writes the final row set as a UTF-8 CSV. The file is written to a
// temp sibling and renamed into place, so a failed run never leaves a
// partial file at the output path.
type Writer struct {
	logger *zap.Logger
	path   string
}

// NewWriter creates a Writer targeting path.
func NewWriter(logger *zap.Logger, path string) *Writer {
	return &Writer{logger: logger, path: path}
}

// Write replaces the output file with a header row plus one row per RateRow.
func (w *Writer) Write(ctx context.Context, rows []model.RateRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".rates-*.csv")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	cw := csv.NewWriter(tmp)
	if err := cw.Write(Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Brand,
			row.Family,
			row.Name,
			row.Ticker,
			row.Base,
			row.Quote,
			row.Dissemination,
			row.LaunchDate,
			row.InceptionDate,
			row.Exchanges,
			row.CalcWindow,
			row.Factsheet,
		}
		if err := cw.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", row.Ticker, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}

	w.logger.Info("csvio.written",
		zap.String("path", w.path),
		zap.Int("rows", len(rows)))
	return nil
}
