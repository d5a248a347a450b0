// Package dashboard resolves the view a user sees and builds the view descriptors
// the portal client renders.
package dashboard

import "github.com/jwalitptl/patio-health/internal/model"

type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Stat struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// View is a render descriptor. Panels hold fixture data created for this view only.
type View struct {
	Name       string                 `json:"view"`
	Title      string                 `json:"title"`
	Role       model.Role             `json:"role,omitempty"`
	User       *model.User            `json:"user,omitempty"`
	Navigation []NavItem              `json:"navigation,omitempty"`
	Stats      []Stat                 `json:"stats,omitempty"`
	Panels     map[string]interface{} `json:"panels,omitempty"`
	Message    string                 `json:"message,omitempty"`
}

// View names
const (
	ViewLanding         = "landing"
	ViewLogin           = "login"
	ViewRegister        = "register"
	ViewProfile         = "profile"
	ViewSettings        = "settings"
	ViewNotFound        = "not_found"
	ViewUnavailable     = "dashboard_unavailable"
	ViewAdmin           = "admin_dashboard"
	ViewDoctor          = "doctor_dashboard"
	ViewNurse           = "nurse_dashboard"
	ViewPatient         = "patient_dashboard"
	ViewReceptionist    = "receptionist_dashboard"
	ViewLabTechnician   = "lab_technician_dashboard"
	ViewNursePatients   = "nurse_patients"
	ViewNurseVitals     = "nurse_vitals"
	ViewNurseMedication = "nurse_medications"
	ViewNurseNotes      = "nurse_notes"
)

// WorkspacePath returns the dedicated route for a role, "" when it has none
func WorkspacePath(r model.Role) string {
	switch r {
	case model.RoleAdmin:
		return "/admin"
	case model.RoleDoctor:
		return "/doctor"
	case model.RoleNurse:
		return "/nurse"
	case model.RolePatient:
		return "/patient"
	case model.RoleReceptionist:
		return "/receptionist"
	case model.RoleLabTechnician:
		return "/lab"
	default:
		return ""
	}
}

// Navigation returns the sidebar entries for a role
func Navigation(r model.Role) []NavItem {
	items := []NavItem{{Label: "Dashboard", Href: "/dashboard"}}

	switch r {
	case model.RoleAdmin:
		items = append(items, NavItem{Label: "Administration", Href: "/admin"})
	case model.RoleDoctor:
		items = append(items, NavItem{Label: "Patients", Href: "/doctor"})
	case model.RoleNurse:
		items = append(items,
			NavItem{Label: "Patients", Href: "/nurse/patients"},
			NavItem{Label: "Vitals", Href: "/nurse/vitals"},
			NavItem{Label: "Medications", Href: "/nurse/medications"},
			NavItem{Label: "Notes", Href: "/nurse/notes"},
		)
	case model.RolePatient:
		items = append(items, NavItem{Label: "My Care", Href: "/patient"})
	case model.RoleReceptionist:
		items = append(items, NavItem{Label: "Front Desk", Href: "/receptionist"})
	case model.RoleLabTechnician:
		items = append(items, NavItem{Label: "Laboratory", Href: "/lab"})
	}

	return append(items,
		NavItem{Label: "Profile", Href: "/profile"},
		NavItem{Label: "Settings", Href: "/settings"},
	)
}
