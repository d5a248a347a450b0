package model

// Appointment status values
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Doctor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Department     string  `json:"department"`
	Available      bool    `json:"available"`
	Rating         float64 `json:"rating"`
}

type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes,omitempty"`
}

// BookAppointmentRequest is the booking form payload
type BookAppointmentRequest struct {
	DoctorID    string `json:"doctor_id" binding:"required"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Reason      string `json:"reason"`
}

type LabTest struct {
	ID            string `json:"id"`
	PatientName   string `json:"patient_name"`
	DoctorName    string `json:"doctor_name"`
	TestType      string `json:"test_type"`
	RequestedDate string `json:"requested_date"`
	Status        string `json:"status"`
	Result        string `json:"result,omitempty"`
}

type BillItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type Bill struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	PatientName   string     `json:"patient_name"`
	Amount        float64    `json:"amount"`
	Date          string     `json:"date"`
	Status        string     `json:"status"`
	Items         []BillItem `json:"items"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

type Department struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Head         string `json:"head"`
	StaffCount   int    `json:"staff_count"`
	BedCount     int    `json:"bed_count"`
	OccupiedBeds int    `json:"occupied_beds"`
}

type VitalSign struct {
	ID               string  `json:"id"`
	PatientName      string  `json:"patient_name"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	Temperature      float64 `json:"temperature"`
	BloodPressure    string  `json:"blood_pressure"`
	HeartRate        int     `json:"heart_rate"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	OxygenSaturation int     `json:"oxygen_saturation"`
	RecordedBy       string  `json:"recorded_by"`
}
