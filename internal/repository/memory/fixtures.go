package memory

import "github.com/jwalitptl/patio-health/internal/model"

const avatarBase = "https://images.unsplash.com/"

// SeedUsers returns the accounts every fresh identity table starts with
func SeedUsers() []*model.User {
	return []*model.User{
		{
			ID:     "1",
			Email:  "admin@hospital.com",
			Name:   "Admin User",
			Role:   model.RoleAdmin,
			Avatar: avatarBase + "photo-1559839734-2b71ea197ec2?w=400&h=400&fit=crop",
		},
		{
			ID:             "2",
			Email:          "dr.smith@hospital.com",
			Name:           "Dr. Sarah Smith",
			Role:           model.RoleDoctor,
			Specialization: "Cardiology",
			Department:     "Cardiology",
			Avatar:         avatarBase + "photo-1594824204356-d2e7cb98f1b0?w=400&h=400&fit=crop",
		},
		{
			ID:         "3",
			Email:      "nurse.johnson@hospital.com",
			Name:       "Nurse Emily Johnson",
			Role:       model.RoleNurse,
			Department: "Emergency",
			Avatar:     avatarBase + "photo-1638202993928-7267aad84c31?w=400&h=400&fit=crop",
		},
		{
			ID:     "4",
			Email:  "patient@example.com",
			Name:   "John Patient",
			Role:   model.RolePatient,
			Phone:  "+1-555-0123",
			Avatar: avatarBase + "photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
		},
		{
			ID:         "5",
			Email:      "receptionist@hospital.com",
			Name:       "Receptionist Mary",
			Role:       model.RoleReceptionist,
			Department: "Administration",
			Avatar:     avatarBase + "photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop",
		},
		{
			ID:         "6",
			Email:      "labtech@hospital.com",
			Name:       "Lab Technician Tom",
			Role:       model.RoleLabTechnician,
			Department: "Laboratory",
			Avatar:     avatarBase + "photo-1500648767791-00dcc994a43e?w=400&h=400&fit=crop",
		},
	}
}

func seedAppointments() []*model.Appointment {
	return []*model.Appointment{
		{
			ID:          "1",
			PatientID:   "4",
			DoctorID:    "2",
			PatientName: "John Patient",
			DoctorName:  "Dr. Sarah Smith",
			Date:        "2024-01-15",
			Time:        "10:00",
			Status:      model.AppointmentPending,
			Reason:      "Regular checkup",
		},
	}
}
