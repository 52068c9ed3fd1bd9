package store

import (
	"context"
	"fmt"

	"goodsmile/clinic/domain"
)

const appointmentColumns = `id, patient_name, mobile_number, work_description, appointment_date, appointment_time, created_at`

func (s *Store) CreateAppointment(ctx context.Context, a *domain.Appointment) error {
	err := s.db.QueryRowxContext(ctx, `INSERT INTO appointments (patient_name, mobile_number, work_description, appointment_date, appointment_time)
                VALUES (?, ?, ?, ?, ?) RETURNING id, created_at`,
		a.PatientName, a.MobileNumber, a.WorkDescription, a.AppointmentDate, a.AppointmentTime).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a domain.Appointment) error {
	res, err := s.db.ExecContext(ctx, `UPDATE appointments SET patient_name = ?, mobile_number = ?, work_description = ?, appointment_date = ?, appointment_time = ? WHERE id = ?`,
		a.PatientName, a.MobileNumber, a.WorkDescription, a.AppointmentDate, a.AppointmentTime, a.ID)
	return expectOne(res, err, "update appointment")
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	return expectOne(res, err, "delete appointment")
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (domain.Appointment, error) {
	var a domain.Appointment
	if err := s.db.GetContext(ctx, &a, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id); err != nil {
		return a, notFound(err, "get appointment")
	}
	return a, nil
}

// AppointmentsByDate lists one day's appointments in time order.
func (s *Store) AppointmentsByDate(ctx context.Context, date string) ([]domain.Appointment, error) {
	appointments := []domain.Appointment{}
	err := s.db.SelectContext(ctx, &appointments, `SELECT `+appointmentColumns+` FROM appointments
                WHERE appointment_date = ? ORDER BY appointment_time ASC, id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// AppointmentsBetween lists appointments with start <= date <= end.
func (s *Store) AppointmentsBetween(ctx context.Context, start, end string) ([]domain.Appointment, error) {
	appointments := []domain.Appointment{}
	err := s.db.SelectContext(ctx, &appointments, `SELECT `+appointmentColumns+` FROM appointments
                WHERE appointment_date >= ? AND appointment_date <= ?
                ORDER BY appointment_date ASC, appointment_time ASC, id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}
