package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// factsheetColumns are the accepted header names for the factsheet column,
// newest first. "Fact Sheet" survives from a historical schema rename.
var factsheetColumns = []string{"Factsheet", "Fact Sheet"}

// Reader reads the previous run's published CSV to build the factsheet
// carry-forward index.
type Reader struct {
	logger *zap.Logger
	path   string
}

// NewReader creates a Reader for the prior output at path.
func NewReader(logger *zap.Logger, path string) *Reader {
	return &Reader{logger: logger, path: path}
}

// FactsheetIndex maps each ticker in the prior output to its non-empty
// factsheet link. A missing prior file (first run) yields an empty index.
func (r *Reader) FactsheetIndex(ctx context.Context) (model.FactsheetIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Info("csvio.no_prior_output", zap.String("path", r.path))
			return model.FactsheetIndex{}, nil
		}
		return nil, fmt.Errorf("open prior output: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate historical column drift

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.FactsheetIndex{}, nil
		}
		return nil, fmt.Errorf("read prior header: %w", err)
	}

	tickerCol, linkCol := locateColumns(header)
	if tickerCol < 0 || linkCol < 0 {
		r.logger.Warn("csvio.prior_schema_unrecognized",
			zap.Strings("header", header))
		return model.FactsheetIndex{}, nil
	}

	index := model.FactsheetIndex{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read prior row: %w", err)
		}
		if len(record) <= tickerCol || len(record) <= linkCol {
			continue
		}
		if ticker, link := record[tickerCol], record[linkCol]; ticker != "" && link != "" {
			index[ticker] = link
		}
	}

	r.logger.Info("csvio.prior_index_loaded",
		zap.String("path", r.path),
		zap.Int("links", len(index)))
	return index, nil
}

func locateColumns(header []string) (tickerCol, linkCol int) {
	tickerCol, linkCol = -1, -1
	for i, name := range header {
		if name == "Ticker" {
			tickerCol = i
		}
		for _, candidate := range factsheetColumns {
			if name == candidate {
				linkCol = i
			}
		}
	}
	return tickerCol, linkCol
}
