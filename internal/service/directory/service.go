// Package directory serves the hospital directory calls: doctors, appointments and users.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
)

// ErrUnknownDoctor is returned when a booking names an id that is not a doctor account
var ErrUnknownDoctor = errors.New("unknown doctor")

type Service struct {
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	logger       zerolog.Logger
}

func NewService(users repository.UserRepository, appointments repository.AppointmentRepository, logger zerolog.Logger) *Service {
	return &Service{
		users:        users,
		appointments: appointments,
		logger:       logger,
	}
}

// Doctors lists the doctor accounts of the identity table, so every id it returns
// can be booked and the booking shows up in that doctor's appointments.
func (s *Service) Doctors(ctx context.Context) ([]model.Doctor, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	doctors := make([]model.Doctor, 0, len(users))
	for _, u := range users {
		if u.Role != model.RoleDoctor {
			continue
		}
		doctors = append(doctors, model.Doctor{
			ID:             u.ID,
			Name:           u.Name,
			Specialization: u.Specialization,
			Department:     u.Department,
			Available:      true,
		})
	}
	return doctors, nil
}

func (s *Service) doctor(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDoctor, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}
	if u.Role != model.RoleDoctor {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDoctor, id)
	}
	return u, nil
}

// Appointments lists what the caller may see: everything for admins and
// receptionists, otherwise only appointments where the caller takes part.
func (s *Service) Appointments(ctx context.Context, caller *model.User) ([]*model.Appointment, error) {
	filter := caller.ID
	if caller.Role == model.RoleAdmin || caller.Role == model.RoleReceptionist {
		filter = ""
	}

	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Book records a new appointment. Every booking starts pending. A patient always
// books for themselves. The doctor must be a doctor account and its name always
// comes from the identity table.
func (s *Service) Book(ctx context.Context, caller *model.User, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	doc, err := s.doctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		ID:          uuid.NewString(),
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		DoctorID:    doc.ID,
		DoctorName:  doc.Name,
		Date:        req.Date,
		Time:        req.Time,
		Status:      model.AppointmentPending,
		Reason:      req.Reason,
	}

	if caller.Role == model.RolePatient || appointment.PatientID == "" {
		appointment.PatientID = caller.ID
		appointment.PatientName = caller.Name
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Str("doctor_id", appointment.DoctorID).
		Msg("appointment booked")

	return appointment, nil
}

func (s *Service) Users(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
