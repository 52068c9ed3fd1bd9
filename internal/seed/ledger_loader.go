package seed

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"goodsmile/clinic/domain"
)

// LoadTransactions imports historical ledger rows from a CSV with the header
// date,patient_name,work_done,amount_paid,payment_method. Bad rows are logged
// and skipped; the import runs in one database transaction. A file whose
// content was already imported is skipped, so the seed can stay configured
// across restarts.
func LoadTransactions(db *sqlx.DB, csvPath string, logger zerolog.Logger) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open ledger seed %s: %w", csvPath, err)
	}
	defer file.Close()
	return loadTransactions(db, file, logger)
}

func loadTransactions(db *sqlx.DB, r io.Reader, logger zerolog.Logger) (int, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read ledger seed: %w", err)
	}
	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read ledger header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("start ledger import: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT OR IGNORE INTO ledger_imports (checksum) VALUES (?)`, checksum)
	if err != nil {
		return 0, fmt.Errorf("record ledger import: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("record ledger import: %w", err)
	} else if n == 0 {
		logger.Info().Str("checksum", checksum).Msg("ledger seed already imported, skipping")
		return 0, nil
	}

	stmt, err := tx.Preparex(`INSERT INTO transactions (patient_name, work_done, amount_paid, payment_method, is_free, date) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare ledger insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("unreadable ledger row")
			continue
		}
		t, err := parseTransaction(record)
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("skipping ledger row")
			continue
		}
		if _, err := stmt.Exec(t.PatientName, t.WorkDone, t.AmountPaid, string(t.PaymentMethod), t.IsFree, t.Date); err != nil {
			return rows, fmt.Errorf("insert ledger row %d: %w", line, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ledger import: %w", err)
	}
	logger.Info().Int("rows", rows).Msg("seeded transaction ledger")
	return rows, nil
}

func parseTransaction(record []string) (domain.Transaction, error) {
	if len(record) < 4 {
		return domain.Transaction{}, fmt.Errorf("expected at least 4 columns, got %d", len(record))
	}
	date := strings.TrimSpace(record[0])
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date %q", date)
	}
	t := domain.Transaction{
		Date:        date,
		PatientName: strings.TrimSpace(record[1]),
		WorkDone:    strings.TrimSpace(record[2]),
	}
	if t.PatientName == "" || t.WorkDone == "" {
		return domain.Transaction{}, fmt.Errorf("patient_name and work_done are required")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil || amount.IsNegative() || amount.Exponent() > 18 || amount.Exponent() < -18 {
		return domain.Transaction{}, fmt.Errorf("invalid amount %q", record[3])
	}
	t.AmountPaid = amount
	if len(record) > 4 {
		t.PaymentMethod = domain.PaymentMethod(strings.TrimSpace(record[4]))
	}
	switch t.PaymentMethod {
	case domain.PaymentFree:
		t.IsFree = true
	case "", domain.PaymentCash, domain.PaymentBKash, domain.PaymentOnline:
	default:
		return domain.Transaction{}, fmt.Errorf("unknown payment method %q", t.PaymentMethod)
	}
	t.Normalize()
	return t, nil
}
