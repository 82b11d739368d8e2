package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/storage"
)

// Source yields the trade transaction table.
//
// Fingerprint is cheap and identifies the current content; callers reload
// only when it changes. Both methods return ErrSourceNotFound when there is
// nothing to read.
type Source interface {
	Name() string
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*models.Table, error)
}

// CSVSource reads a delimited file from the local file system.
type CSVSource struct {
	Path    string
	Options ParseOptions
}

// NewCSVSource returns a source for the file at path.
func NewCSVSource(path string, opts ParseOptions) *CSVSource {
	return &CSVSource{Path: path, Options: opts}
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Fingerprint combines path, size and modification time.
func (s *CSVSource) Fingerprint(_ context.Context) (string, error) {
	fi, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return "", fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, s.Path)
	}
	return fmt.Sprintf("csv:%s:%d:%d", s.Path, fi.Size(), fi.ModTime().UnixNano()), nil
}

// Load parses the whole file.
func (s *CSVSource) Load(ctx context.Context) (*models.Table, error) {
	if _, err := s.Fingerprint(ctx); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := ParseTable(ctx, f, s.Path, s.Options)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return table, nil
}

// PostgresSource reads the table mirrored by the ingest command.
type PostgresSource struct {
	repo storage.TransactionsRepository
}

// NewPostgresSource returns a source backed by the transactions repository.
func NewPostgresSource(repo storage.TransactionsRepository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) Name() string { return "postgres:transactions" }

// Fingerprint is derived from the ingestion log. An empty mirror counts as a missing source.
func (s *PostgresSource) Fingerprint(ctx context.Context) (string, error) {
	st, err := s.repo.IngestionState(ctx)
	if err != nil {
		return "", fmt.Errorf("read ingestion state: %w", err)
	}
	if st.Rows == 0 {
		return "", fmt.Errorf("%w: no transactions ingested", ErrSourceNotFound)
	}
	return fmt.Sprintf("pg:%d:%d:%d", st.Files, st.Rows, st.LastIngested.UnixNano()), nil
}

// Load rebuilds the table, formatting raw cells in CanonicalHeader order.
func (s *PostgresSource) Load(ctx context.Context) (*models.Table, error) {
	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("%w: no transactions ingested", ErrSourceNotFound)
	}

	table := &models.Table{
		Source:       s.Name(),
		Header:       CanonicalHeader,
		Records:      make([][]string, 0, len(txs)),
		Transactions: txs,
	}
	for _, t := range txs {
		table.Records = append(table.Records, formatRecord(t))
	}
	return table, nil
}

// formatRecord renders a transaction in CanonicalHeader order.
func formatRecord(t models.Transaction) []string {
	date := ""
	if !t.Date.IsZero() {
		date = t.Date.Format("2006-01-02")
	}
	return []string{
		t.TransactionID, t.Country, t.Product, t.ImportExport,
		formatNumber(t.Quantity), formatNumber(t.Value), date, t.Category,
		t.Port, t.CustomsCode, formatNumber(t.Weight), t.ShippingMethod,
		t.Supplier, t.Customer, t.InvoiceNumber, t.PaymentTerms,
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
