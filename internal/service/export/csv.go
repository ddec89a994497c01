package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessing/internal/apperrors"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

const timestampLayout = "20060102150405"

var (
	header   = []string{"ID", "Type", "Amount", "Flag", "Status", "Priority"}
	noteRow  = []string{"", "", "", "", "Note", "High value order"}
	fileMode = os.FileMode(0o644)
)

type Option func(*CSVExporter)

// WithClock overrides the clock used to stamp file names
func WithClock(now func() time.Time) Option {
	return func(e *CSVExporter) { e.now = now }
}

// WithCreateFunc overrides how export files are created
func WithCreateFunc(create func(name string) (io.WriteCloser, error)) Option {
	return func(e *CSVExporter) { e.create = create }
}

// CSVExporter writes one delimited file per exported order
type CSVExporter struct {
	Dir string

	now    func() time.Time
	create func(name string) (io.WriteCloser, error)
}

func New(dir string, opts ...Option) *CSVExporter {
	e := &CSVExporter{
		Dir: dir,
		now: time.Now,
		create: func(name string) (io.WriteCloser, error) {
			return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FileName returns name of export file for the order stamped with t
func FileName(orderID int64, t time.Time) string {
	return fmt.Sprintf("orders_type_%s_%d_%s.csv", models.OrderTypeExport, orderID, t.Format(timestampLayout))
}

// Export writes the order as it should be persisted: status and priority must already be set.
// On failure partially written file is removed and error wraps apperrors.ErrExportFailed.
func (e *CSVExporter) Export(ctx context.Context, order models.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrExportFailed, err)
	}

	path := filepath.Join(e.Dir, FileName(order.ID, e.now()))

	f, err := e.create(path)
	if err != nil {
		return "", fmt.Errorf("%w: can't create file: %w", apperrors.ErrExportFailed, err)
	}

	err = errors.Join(writeRows(f, order), f.Close())
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: can't write file %s: %w", apperrors.ErrExportFailed, path, err)
	}

	return path, nil
}

func writeRows(w io.Writer, order models.Order) error {
	cw := csv.NewWriter(w)

	rows := [][]string{header, {
		strconv.FormatInt(order.ID, 10),
		order.Type,
		FormatAmount(order.Amount),
		strconv.FormatBool(order.Flag),
		order.Status,
		order.Priority,
	}}
	if models.IsHighValue(order.Amount) {
		rows = append(rows, noteRow)
	}

	return cw.WriteAll(rows)
}

// FormatAmount renders amount as decimal number with at least one fractional digit: 100 -> "100.0"
func FormatAmount(amount decimal.Decimal) string {
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
