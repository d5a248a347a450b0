package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
)

type appointmentRepository struct {
	mu           sync.RWMutex
	appointments []*model.Appointment
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{appointments: seedAppointments()}
}

// List returns the appointments where userID is the patient or the doctor.
// An empty userID returns everything.
func (r *appointmentRepository) List(ctx context.Context, userID string) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		if userID == "" || a.PatientID == userID || a.DoctorID == userID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *appointment
	r.appointments = append(r.appointments, &c)
	return nil
}
