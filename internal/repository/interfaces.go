package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/patio-health/internal/model"
)

// ErrNotFound is returned when no record matches a lookup
var ErrNotFound = errors.New("record not found")

type (
	// UserRepository is the identity table capability used by the identity service
	UserRepository interface {
		FindByEmail(ctx context.Context, email string) (*model.User, error)
		FindByID(ctx context.Context, id string) (*model.User, error)
		Insert(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
	}

	// AppointmentRepository backs the appointment directory endpoints
	AppointmentRepository interface {
		List(ctx context.Context, userID string) ([]*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
	}
)
