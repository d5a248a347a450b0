package dashboard

import (
	"fmt"

	"github.com/jwalitptl/patio-health/internal/model"
)

// Resolve maps the user's role to its dashboard. Roles without a dashboard, and a
// nil user, get the unavailable view.
func Resolve(user *model.User) View {
	if user == nil {
		return unavailable(nil)
	}

	switch user.Role {
	case model.RoleAdmin:
		return adminView(user)
	case model.RoleDoctor:
		return doctorView(user)
	case model.RoleNurse:
		return nurseView(user)
	case model.RolePatient:
		return patientView(user)
	case model.RoleReceptionist:
		return receptionistView(user)
	case model.RoleLabTechnician:
		return labView(user)
	default:
		return unavailable(user)
	}
}

func base(name, title string, user *model.User) View {
	return View{
		Name:       name,
		Title:      title,
		Role:       user.Role,
		User:       user.Clone(),
		Navigation: Navigation(user.Role),
		Panels:     map[string]interface{}{},
	}
}

func unavailable(user *model.User) View {
	v := View{
		Name:    ViewUnavailable,
		Title:   "Dashboard not available",
		Message: "No dashboard is available for this role yet.",
	}
	if user != nil {
		v.Role = user.Role
		v.User = user.Clone()
		v.Navigation = Navigation(user.Role)
	}
	return v
}

func adminView(user *model.User) View {
	v := base(ViewAdmin, "Admin Dashboard", user)

	departments := Departments()
	beds, occupied, staff := 0, 0, 0
	for _, d := range departments {
		beds += d.BedCount
		occupied += d.OccupiedBeds
		staff += d.StaffCount
	}

	bills := Bills()
	revenue := 0.0
	for _, b := range bills {
		if b.Status == "paid" {
			revenue += b.Amount
		}
	}

	v.Stats = []Stat{
		{Label: "Total Staff", Value: staff},
		{Label: "Doctors", Value: len(Doctors())},
		{Label: "Bed Occupancy", Value: fmt.Sprintf("%d/%d", occupied, beds)},
		{Label: "Revenue", Value: revenue},
	}
	v.Panels["departments"] = departments
	v.Panels["doctors"] = Doctors()
	v.Panels["appointments"] = Appointments()
	v.Panels["billing"] = bills
	return v
}

func doctorView(user *model.User) View {
	v := base(ViewDoctor, "Welcome, "+user.Name, user)

	appointments := Appointments()
	pending := 0
	for _, a := range appointments {
		if a.Status == model.AppointmentPending {
			pending++
		}
	}

	v.Stats = []Stat{
		{Label: "Appointments", Value: len(appointments)},
		{Label: "Pending", Value: pending},
		{Label: "Patients", Value: len(Patients())},
		{Label: "Lab Requests", Value: len(LabTests())},
	}
	v.Panels["appointments"] = appointments
	v.Panels["patients"] = Patients()
	v.Panels["lab_tests"] = LabTests()
	return v
}

func nurseView(user *model.User) View {
	v := base(ViewNurse, "Welcome back, "+user.Name, user)

	medications := Medications()
	due := 0
	for _, m := range medications {
		if m.Status == "pending" {
			due++
		}
	}

	v.Stats = []Stat{
		{Label: "Assigned Patients", Value: len(Patients())},
		{Label: "Vitals Logged", Value: len(VitalSigns())},
		{Label: "Medications Due", Value: due},
		{Label: "Notes Logged", Value: len(Notes())},
	}
	v.Panels["patients"] = Patients()
	v.Panels["medications"] = medications
	v.Panels["vitals"] = VitalSigns()
	v.Panels["beds"] = Beds()
	v.Panels["shifts"] = Shifts()
	return v
}

func patientView(user *model.User) View {
	v := base(ViewPatient, "Welcome, "+user.Name, user)

	var mine []model.Appointment
	for _, a := range Appointments() {
		if a.PatientName == user.Name {
			mine = append(mine, a)
		}
	}
	var bills []model.Bill
	outstanding := 0.0
	for _, b := range Bills() {
		if b.PatientName != user.Name {
			continue
		}
		bills = append(bills, b)
		if b.Status != "paid" {
			outstanding += b.Amount
		}
	}

	v.Stats = []Stat{
		{Label: "Upcoming Appointments", Value: len(mine)},
		{Label: "Outstanding Balance", Value: outstanding},
	}
	v.Panels["appointments"] = mine
	v.Panels["billing"] = bills
	v.Panels["doctors"] = Doctors()
	return v
}

func receptionistView(user *model.User) View {
	v := base(ViewReceptionist, "Receptionist Dashboard", user)

	checkIns := CheckIns()
	checkedIn := 0
	for _, c := range checkIns {
		if c.Status == "checked-in" {
			checkedIn++
		}
	}
	rooms := Rooms()
	available := 0
	for _, r := range rooms {
		if r.Status == "available" {
			available++
		}
	}

	v.Stats = []Stat{
		{Label: "Today's Appointments", Value: len(Appointments())},
		{Label: "Check-ins", Value: checkedIn},
		{Label: "Available Rooms", Value: available},
		{Label: "Visitors", Value: len(Visitors())},
	}
	v.Panels["appointments"] = Appointments()
	v.Panels["check_ins"] = checkIns
	v.Panels["rooms"] = rooms
	v.Panels["visitors"] = Visitors()
	v.Panels["doctors"] = Doctors()
	return v
}

func labView(user *model.User) View {
	v := base(ViewLabTechnician, "Lab Technician Dashboard", user)

	tests := LabTests()
	counts := map[string]int{}
	for _, t := range tests {
		counts[t.Status]++
	}

	v.Stats = []Stat{
		{Label: "Pending Tests", Value: counts["pending"]},
		{Label: "In Progress", Value: counts["in_progress"]},
		{Label: "Completed", Value: counts["completed"]},
		{Label: "Total Tests", Value: len(tests)},
	}
	v.Panels["lab_tests"] = tests
	return v
}
