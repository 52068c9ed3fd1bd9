package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goodsmile/clinic/domain"
)

const (
	transactionColumns = `id, patient_name, work_done, amount_paid, payment_method, is_free, date, created_at`
	expenseColumns     = `id, description, amount, date, created_at`
)

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Transactions

func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	err := s.db.QueryRowxContext(ctx, `INSERT INTO transactions (patient_name, work_done, amount_paid, payment_method, is_free, date)
                VALUES (?, ?, ?, ?, ?, ?) RETURNING id, created_at`,
		t.PatientName, t.WorkDone, t.AmountPaid, string(t.PaymentMethod), t.IsFree, t.Date).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	res, err := s.db.ExecContext(ctx, `UPDATE transactions SET patient_name = ?, work_done = ?, amount_paid = ?, payment_method = ?, is_free = ?, date = ? WHERE id = ?`,
		t.PatientName, t.WorkDone, t.AmountPaid, string(t.PaymentMethod), t.IsFree, t.Date, t.ID)
	return expectOne(res, err, "update transaction")
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return expectOne(res, err, "delete transaction")
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	var t domain.Transaction
	if err := s.db.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id); err != nil {
		return t, notFound(err, "get transaction")
	}
	return t, nil
}

// TransactionsByDate lists one day's transactions, newest first.
func (s *Store) TransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	err := s.db.SelectContext(ctx, &txs, `SELECT `+transactionColumns+` FROM transactions
                WHERE date = ? ORDER BY created_at DESC, id DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// TransactionsBetween lists transactions with start <= date <= end, oldest first.
func (s *Store) TransactionsBetween(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	err := s.db.SelectContext(ctx, &txs, `SELECT `+transactionColumns+` FROM transactions
                WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Expenses

func (s *Store) CreateExpense(ctx context.Context, e *domain.Expense) error {
	err := s.db.QueryRowxContext(ctx, `INSERT INTO expenses (description, amount, date) VALUES (?, ?, ?) RETURNING id, created_at`,
		e.Description, e.Amount, e.Date).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, e domain.Expense) error {
	res, err := s.db.ExecContext(ctx, `UPDATE expenses SET description = ?, amount = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount, e.Date, e.ID)
	return expectOne(res, err, "update expense")
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	return expectOne(res, err, "delete expense")
}

func (s *Store) GetExpense(ctx context.Context, id int64) (domain.Expense, error) {
	var e domain.Expense
	if err := s.db.GetContext(ctx, &e, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id); err != nil {
		return e, notFound(err, "get expense")
	}
	return e, nil
}

func (s *Store) ExpensesByDate(ctx context.Context, date string) ([]domain.Expense, error) {
	exps := []domain.Expense{}
	err := s.db.SelectContext(ctx, &exps, `SELECT `+expenseColumns+` FROM expenses
                WHERE date = ? ORDER BY created_at DESC, id DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return exps, nil
}

func (s *Store) ExpensesBetween(ctx context.Context, start, end string) ([]domain.Expense, error) {
	exps := []domain.Expense{}
	err := s.db.SelectContext(ctx, &exps, `SELECT `+expenseColumns+` FROM expenses
                WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return exps, nil
}
