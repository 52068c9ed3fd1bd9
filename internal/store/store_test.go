package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/database"
	"goodsmile/clinic/internal/migrations"
	"goodsmile/clinic/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Run(db))
	return store.New(db)
}

func TestAppointmentsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	late := domain.Appointment{PatientName: "Karim", MobileNumber: "017", WorkDescription: "RCT", AppointmentDate: "2025-06-04", AppointmentTime: "18:00"}
	early := domain.Appointment{PatientName: "Rahim", MobileNumber: "018", WorkDescription: "Scaling", AppointmentDate: "2025-06-04", AppointmentTime: "10:30"}
	other := domain.Appointment{PatientName: "Salma", MobileNumber: "019", WorkDescription: "Filling", AppointmentDate: "2025-06-20", AppointmentTime: "11:00"}
	for _, a := range []*domain.Appointment{&late, &early, &other} {
		require.NoError(t, s.CreateAppointment(ctx, a))
		require.NotZero(t, a.ID)
		require.NotEmpty(t, a.CreatedAt)
	}

	day, err := s.AppointmentsByDate(ctx, "2025-06-04")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "Rahim", day[0].PatientName)
	assert.Equal(t, "Karim", day[1].PatientName)

	month, err := s.AppointmentsBetween(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	require.Len(t, month, 3)
	assert.Equal(t, "Salma", month[2].PatientName)

	early.AppointmentTime = "12:00"
	require.NoError(t, s.UpdateAppointment(ctx, early))
	got, err := s.GetAppointment(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.AppointmentTime)

	require.NoError(t, s.DeleteAppointment(ctx, late.ID))
	require.ErrorIs(t, s.DeleteAppointment(ctx, late.ID), store.ErrNotFound)
	_, err = s.GetAppointment(ctx, late.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	empty, err := s.AppointmentsByDate(ctx, "2025-07-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTransactionsRoundTripAmounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	paid := domain.Transaction{PatientName: "Rahim", WorkDone: "Filling", AmountPaid: decimal.RequireFromString("500.50"), PaymentMethod: domain.PaymentBKash, Date: "2025-06-04"}
	free := domain.Transaction{PatientName: "Nila", WorkDone: "Checkup", IsFree: true, PaymentMethod: domain.PaymentFree, Date: "2025-06-04"}
	require.NoError(t, s.CreateTransaction(ctx, &paid))
	require.NoError(t, s.CreateTransaction(ctx, &free))

	got, err := s.GetTransaction(ctx, paid.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.RequireFromString("500.5")), got.AmountPaid.String())
	assert.Equal(t, domain.PaymentBKash, got.PaymentMethod)
	assert.False(t, got.IsFree)

	gotFree, err := s.GetTransaction(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, gotFree.IsFree)
	assert.True(t, gotFree.AmountPaid.IsZero())

	day, err := s.TransactionsByDate(ctx, "2025-06-04")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, free.ID, day[0].ID)

	paid.AmountPaid = decimal.NewFromInt(800)
	require.NoError(t, s.UpdateTransaction(ctx, paid))
	got, err = s.GetTransaction(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, "800", got.AmountPaid.String())

	require.ErrorIs(t, s.UpdateTransaction(ctx, domain.Transaction{ID: 999, PatientName: "x", WorkDone: "x", Date: "2025-06-04"}), store.ErrNotFound)
	require.NoError(t, s.DeleteTransaction(ctx, paid.ID))
}

func TestExpensesBetween(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, e := range []domain.Expense{
		{Description: "Gloves", Amount: decimal.NewFromInt(300), Date: "2025-05-31"},
		{Description: "Rent", Amount: decimal.NewFromInt(15000), Date: "2025-06-01"},
		{Description: "Electricity", Amount: decimal.RequireFromString("1200.75"), Date: "2025-06-30"},
	} {
		e := e
		require.NoError(t, s.CreateExpense(ctx, &e))
	}

	june, err := s.ExpensesBetween(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	require.Len(t, june, 2)
	assert.Equal(t, "Rent", june[0].Description)
	assert.Equal(t, "1200.75", june[1].Amount.String())

	may, err := s.ExpensesByDate(ctx, "2025-05-31")
	require.NoError(t, err)
	require.Len(t, may, 1)

	may[0].Description = "Masks"
	require.NoError(t, s.UpdateExpense(ctx, may[0]))
	got, err := s.GetExpense(ctx, may[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Masks", got.Description)

	require.NoError(t, s.DeleteExpense(ctx, got.ID))
	require.ErrorIs(t, s.DeleteExpense(ctx, got.ID), store.ErrNotFound)
	require.NoError(t, s.Ping(ctx))
}
