package dashboard

import "github.com/jwalitptl/patio-health/internal/model"

func Landing() View {
	return View{
		Name:    ViewLanding,
		Title:   "MediCore Hospital Management",
		Message: "Sign in to reach your workspace.",
		Panels: map[string]interface{}{
			"departments": Departments(),
			"doctors":     Doctors(),
		},
	}
}

func Login() View {
	return View{Name: ViewLogin, Title: "Sign in"}
}

// Register lists the roles a new account may choose
func Register() View {
	return View{
		Name:  ViewRegister,
		Title: "Create an account",
		Panels: map[string]interface{}{
			"roles": model.WorkspaceRoles(),
		},
	}
}

func Profile(user *model.User) View {
	v := withUser(ViewProfile, "Profile", user)
	v.Panels = map[string]interface{}{"profile": user.Clone()}
	return v
}

func Settings(user *model.User) View {
	v := withUser(ViewSettings, "Settings", user)
	v.Panels = map[string]interface{}{
		"notifications": map[string]bool{"email": true, "sms": false},
		"theme":         "system",
	}
	return v
}

func NotFound(path string) View {
	return View{
		Name:    ViewNotFound,
		Title:   "Oops! Page not found",
		Message: "The page you're looking for doesn't exist or has been moved.",
		Panels:  map[string]interface{}{"path": path, "home": "/"},
	}
}

func NursePatients(user *model.User) View {
	v := withUser(ViewNursePatients, "Assigned Patients", user)
	v.Panels = map[string]interface{}{"patients": Patients()}
	return v
}

func NurseVitals(user *model.User) View {
	v := withUser(ViewNurseVitals, "Vital Signs", user)
	v.Panels = map[string]interface{}{"vitals": VitalSigns(), "patients": Patients()}
	return v
}

func NurseMedications(user *model.User) View {
	v := withUser(ViewNurseMedication, "Medication Schedule", user)
	v.Panels = map[string]interface{}{"medications": Medications()}
	return v
}

func NurseNotes(user *model.User) View {
	v := withUser(ViewNurseNotes, "Notes", user)
	v.Panels = map[string]interface{}{"notes": Notes()}
	return v
}

func withUser(name, title string, user *model.User) View {
	v := View{Name: name, Title: title}
	if user != nil {
		v.Role = user.Role
		v.User = user.Clone()
		v.Navigation = Navigation(user.Role)
	}
	return v
}
