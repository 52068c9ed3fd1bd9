package domain

type Appointment struct {
	ID              int64  `db:"id" json:"id"`
	PatientName     string `db:"patient_name" json:"patient_name" validate:"required"`
	MobileNumber    string `db:"mobile_number" json:"mobile_number" validate:"required"`
	WorkDescription string `db:"work_description" json:"work_description" validate:"required"`
	AppointmentDate string `db:"appointment_date" json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `db:"appointment_time" json:"appointment_time" validate:"required"`
	CreatedAt       string `db:"created_at" json:"created_at"`
}
