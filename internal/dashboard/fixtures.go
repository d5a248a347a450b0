package dashboard

import "github.com/jwalitptl/patio-health/internal/model"

// Fixture builders return new slices on every call. Views may mutate what they get.

type Patient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"blood_group"`
	Room        string `json:"room,omitempty"`
}

type Bed struct {
	ID      int    `json:"id"`
	Status  string `json:"status"`
	Patient string `json:"patient,omitempty"`
}

type Room struct {
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Capacity  int      `json:"capacity"`
	Status    string   `json:"status"`
	Occupants []string `json:"occupants"`
}

type Medication struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Medicine    string `json:"medicine"`
	Dosage      string `json:"dosage"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

type Note struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Summary     string `json:"summary"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
}

type CheckIn struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

type Visitor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	VisitingPatient string `json:"visiting_patient"`
	Time            string `json:"time"`
	Status          string `json:"status"`
}

type Shift struct {
	Day   string `json:"day"`
	Shift string `json:"shift"`
	Time  string `json:"time"`
}

// Doctors is the display roster. Seeded doctor accounts keep their identity ids;
// the others are not bookable accounts and use ids no seed account has.
func Doctors() []model.Doctor {
	return []model.Doctor{
		{ID: "2", Name: "Dr. Sarah Smith", Specialization: "Cardiology", Department: "Cardiology", Available: true, Rating: 4.8},
		{ID: "7", Name: "Dr. Michael Chen", Specialization: "Neurology", Department: "Neurology", Available: true, Rating: 4.9},
		{ID: "8", Name: "Dr. Lisa Anderson", Specialization: "Pediatrics", Department: "Pediatrics", Available: false, Rating: 4.7},
		{ID: "9", Name: "Dr. James Wilson", Specialization: "Orthopedics", Department: "Orthopedics", Available: true, Rating: 4.6},
		{ID: "10", Name: "Dr. Emily Davis", Specialization: "Dermatology", Department: "Dermatology", Available: true, Rating: 4.8},
	}
}

func Patients() []Patient {
	return []Patient{
		{ID: "4", Name: "John Patient", Email: "patient@example.com", Phone: "+1-555-0301", DateOfBirth: "1985-05-15", Gender: "male", BloodGroup: "O+", Room: "201"},
		{ID: "2", Name: "Jane Doe", Email: "jane.doe@example.com", Phone: "+1-555-0302", DateOfBirth: "1990-08-22", Gender: "female", BloodGroup: "A+", Room: "202"},
		{ID: "3", Name: "Robert Miller", Email: "robert.miller@example.com", Phone: "+1-555-0303", DateOfBirth: "1978-12-10", Gender: "male", BloodGroup: "B+", Room: "206"},
	}
}

func Appointments() []model.Appointment {
	return []model.Appointment{
		{ID: "1", PatientID: "4", PatientName: "John Patient", DoctorID: "2", DoctorName: "Dr. Sarah Smith", Date: "2024-01-15", Time: "10:00", Status: model.AppointmentConfirmed, Reason: "Regular checkup", Notes: "Follow-up appointment"},
		{ID: "2", PatientID: "2", PatientName: "Jane Doe", DoctorID: "7", DoctorName: "Dr. Michael Chen", Date: "2024-01-16", Time: "14:30", Status: model.AppointmentPending, Reason: "Headache consultation"},
		{ID: "3", PatientID: "3", PatientName: "Robert Miller", DoctorID: "2", DoctorName: "Dr. Sarah Smith", Date: "2024-01-17", Time: "09:00", Status: model.AppointmentCompleted, Reason: "Cardiac evaluation", Notes: "Patient responded well to treatment"},
	}
}

func LabTests() []model.LabTest {
	return []model.LabTest{
		{ID: "1", PatientName: "John Patient", DoctorName: "Dr. Sarah Smith", TestType: "Blood Test", RequestedDate: "2024-01-10", Status: "completed", Result: "All parameters within normal range"},
		{ID: "2", PatientName: "Jane Doe", DoctorName: "Dr. Michael Chen", TestType: "MRI Scan", RequestedDate: "2024-01-12", Status: "in_progress"},
		{ID: "3", PatientName: "Robert Miller", DoctorName: "Dr. Sarah Smith", TestType: "ECG", RequestedDate: "2024-01-13", Status: "pending"},
	}
}

func Bills() []model.Bill {
	return []model.Bill{
		{
			ID: "1", PatientID: "4", PatientName: "John Patient", Amount: 450, Date: "2024-01-15", Status: "paid", PaymentMethod: "Credit Card",
			Items: []model.BillItem{{Description: "Consultation Fee", Amount: 150}, {Description: "Lab Tests", Amount: 200}, {Description: "Medication", Amount: 100}},
		},
		{
			ID: "2", PatientID: "2", PatientName: "Jane Doe", Amount: 320, Date: "2024-01-16", Status: "pending",
			Items: []model.BillItem{{Description: "Consultation Fee", Amount: 150}, {Description: "MRI Scan", Amount: 170}},
		},
		{
			ID: "3", PatientID: "3", PatientName: "Robert Miller", Amount: 280, Date: "2024-01-17", Status: "paid", PaymentMethod: "Cash",
			Items: []model.BillItem{{Description: "Consultation Fee", Amount: 150}, {Description: "ECG", Amount: 130}},
		},
	}
}

func Departments() []model.Department {
	return []model.Department{
		{ID: "1", Name: "Cardiology", Head: "Dr. Sarah Smith", StaffCount: 15, BedCount: 30, OccupiedBeds: 22},
		{ID: "2", Name: "Neurology", Head: "Dr. Michael Chen", StaffCount: 12, BedCount: 25, OccupiedBeds: 18},
		{ID: "3", Name: "Emergency", Head: "Dr. Emergency Head", StaffCount: 20, BedCount: 40, OccupiedBeds: 35},
		{ID: "4", Name: "Pediatrics", Head: "Dr. Lisa Anderson", StaffCount: 18, BedCount: 35, OccupiedBeds: 28},
	}
}

func VitalSigns() []model.VitalSign {
	return []model.VitalSign{
		{ID: "1", PatientName: "John Patient", Date: "2024-01-15", Time: "10:00", Temperature: 98.6, BloodPressure: "120/80", HeartRate: 72, RespiratoryRate: 16, OxygenSaturation: 98, RecordedBy: "Nurse Emily Johnson"},
		{ID: "2", PatientName: "Jane Doe", Date: "2024-01-16", Time: "14:30", Temperature: 99.2, BloodPressure: "118/75", HeartRate: 68, RespiratoryRate: 18, OxygenSaturation: 97, RecordedBy: "Nurse Robert Brown"},
	}
}

func Beds() []Bed {
	return []Bed{
		{ID: 201, Status: "occupied", Patient: "John Patient"},
		{ID: 202, Status: "occupied", Patient: "Jane Doe"},
		{ID: 203, Status: "available"},
		{ID: 204, Status: "cleaning"},
		{ID: 205, Status: "available"},
		{ID: 206, Status: "occupied", Patient: "Robert Miller"},
	}
}

func Rooms() []Room {
	return []Room{
		{Number: "101", Type: "Single", Capacity: 1, Status: "occupied", Occupants: []string{"John Patient"}},
		{Number: "102", Type: "Single", Capacity: 1, Status: "available", Occupants: []string{}},
		{Number: "103", Type: "Double", Capacity: 2, Status: "occupied", Occupants: []string{"Jane Doe"}},
		{Number: "104", Type: "Suite", Capacity: 2, Status: "available", Occupants: []string{}},
	}
}

func Medications() []Medication {
	return []Medication{
		{ID: "med-1", PatientName: "John Patient", Medicine: "Lisinopril", Dosage: "10mg", Time: "08:00", Status: "pending", Notes: "Check blood pressure prior to dose."},
		{ID: "med-2", PatientName: "Jane Doe", Medicine: "Sumatriptan", Dosage: "50mg", Time: "10:00", Status: "completed"},
		{ID: "med-3", PatientName: "Robert Miller", Medicine: "Aspirin", Dosage: "81mg", Time: "12:00", Status: "pending"},
	}
}

func Notes() []Note {
	return []Note{
		{ID: "note-1", PatientName: "John Patient", Summary: "Post-op dressing clean and dry. Pain managed with Tylenol. Encourage IS hourly.", Category: "rounds", Timestamp: "09:30"},
		{ID: "note-2", PatientName: "Jane Doe", Summary: "Migraine med administered at 10:05. Reassess pain at 10:35.", Category: "reminder", Timestamp: "10:10"},
	}
}

func CheckIns() []CheckIn {
	return []CheckIn{
		{ID: "1", PatientName: "John Patient", Time: "09:00", Status: "checked-in"},
		{ID: "2", PatientName: "Jane Doe", Time: "10:30", Status: "pending"},
		{ID: "3", PatientName: "Robert Miller", Time: "11:00", Status: "checked-in"},
	}
}

func Visitors() []Visitor {
	return []Visitor{
		{ID: "v1", Name: "Sarah Johnson", VisitingPatient: "John Patient", Time: "10:00", Status: "registered"},
		{ID: "v2", Name: "Mike Smith", VisitingPatient: "Jane Doe", Time: "11:30", Status: "pending"},
	}
}

func Shifts() []Shift {
	return []Shift{
		{Day: "Monday", Shift: "Morning", Time: "06:00 - 14:00"},
		{Day: "Tuesday", Shift: "Morning", Time: "06:00 - 14:00"},
		{Day: "Wednesday", Shift: "Afternoon", Time: "14:00 - 22:00"},
	}
}
