package storage

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/guttosm/tradepulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// IngestionState summarizes what has been mirrored into Postgres. It changes
// whenever a file is ingested, re-ingested or removed.
type IngestionState struct {
	Files        int
	Rows         int64
	LastIngested time.Time
}

// TransactionsRepository defines contract for DB operations.
type TransactionsRepository interface {
	InsertTransactionsBatch(ctx context.Context, sourceFile string, txs []models.Transaction) error
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	HasIngestionForFile(ctx context.Context, filename string) (bool, error)
	UpsertIngestionLog(ctx context.Context, filename string, rowCount int) error
	DeleteTransactionsByFile(ctx context.Context, filename string) error
	IngestionState(ctx context.Context) (IngestionState, error)
}

type transactionsRepository struct {
	db *sql.DB
}

func NewTransactionsRepository(db *sql.DB) TransactionsRepository {
	return &transactionsRepository{db: db}
}

// InsertTransactionsBatch copies multiple transactions into the DB in a single transaction.
func (r *transactionsRepository) InsertTransactionsBatch(ctx context.Context, sourceFile string, txs []models.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"transactions",
		"source_file",
		"transaction_id",
		"country",
		"product",
		"import_export",
		"quantity",
		"value",
		"trade_date",
		"category",
		"port",
		"customs_code",
		"weight",
		"shipping_method",
		"supplier",
		"customer",
		"invoice_number",
		"payment_terms",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range txs {
		if _, err := stmt.ExecContext(ctx,
			sourceFile,
			rec.TransactionID,
			rec.Country,
			rec.Product,
			rec.ImportExport,
			toNullFloat(rec.Quantity),
			toNullFloat(rec.Value),
			toNullDate(rec.Date),
			rec.Category,
			rec.Port,
			rec.CustomsCode,
			toNullFloat(rec.Weight),
			rec.ShippingMethod,
			rec.Supplier,
			rec.Customer,
			rec.InvoiceNumber,
			rec.PaymentTerms,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// LoadTransactions returns every mirrored row in ingestion order.
func (r *transactionsRepository) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, country, product, import_export, quantity, value, trade_date,
		       category, port, customs_code, weight, shipping_method, supplier, customer,
		       invoice_number, payment_terms
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var quantity, value, weight sql.NullFloat64
		var date sql.NullTime
		var id, category, port, customs, shipping sql.NullString
		var supplier, customer, invoice, paymentTerms sql.NullString
		if err := rows.Scan(
			&id, &t.Country, &t.Product, &t.ImportExport, &quantity, &value, &date,
			&category, &port, &customs, &weight, &shipping, &supplier, &customer,
			&invoice, &paymentTerms,
		); err != nil {
			return nil, err
		}
		t.TransactionID = id.String
		t.Quantity = fromNullFloat(quantity)
		t.Value = fromNullFloat(value)
		t.Weight = fromNullFloat(weight)
		if date.Valid {
			t.Date = date.Time
		}
		t.Category = category.String
		t.Port = port.String
		t.CustomsCode = customs.String
		t.ShippingMethod = shipping.String
		t.Supplier = supplier.String
		t.Customer = customer.String
		t.InvoiceNumber = invoice.String
		t.PaymentTerms = paymentTerms.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// HasIngestionForFile checks if a file was already mirrored.
func (r *transactionsRepository) HasIngestionForFile(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a file.
func (r *transactionsRepository) UpsertIngestionLog(ctx context.Context, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, filename, rowCount)
	return err
}

// DeleteTransactionsByFile removes all rows mirrored from one file.
func (r *transactionsRepository) DeleteTransactionsByFile(ctx context.Context, filename string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE source_file = $1`, filename)
	return err
}

// IngestionState reads the ingestion log summary used as the mirror's fingerprint.
func (r *transactionsRepository) IngestionState(ctx context.Context) (IngestionState, error) {
	var (
		st   IngestionState
		rows sql.NullInt64
		last sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(row_count), MAX(ingested_at)
		FROM ingestion_log
	`).Scan(&st.Files, &rows, &last)
	if err != nil {
		return IngestionState{}, err
	}
	if rows.Valid {
		st.Rows = rows.Int64
	}
	if last.Valid {
		st.LastIngested = last.Time
	}
	return st, nil
}

// helpers mapping missing values to NULL (nil) and back
func toNullFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func toNullDate(d time.Time) interface{} {
	if d.IsZero() {
		return nil
	}
	return d
}

func fromNullFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
