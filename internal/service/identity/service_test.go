package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
	"github.com/jwalitptl/patio-health/internal/repository/memory"
	"github.com/jwalitptl/patio-health/pkg/auth"
	"github.com/jwalitptl/patio-health/pkg/metrics"
	"github.com/jwalitptl/patio-health/pkg/security"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.User), args.Error(1)
}

func newTestService(opts ...Option) *Service {
	return NewService(memory.NewUserRepository(memory.SeedUsers()...), auth.NewPrefixCodec(), opts...)
}

func TestService_Login(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("seeded account", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "dr.smith@hospital.com", "anything")
		require.NoError(t, err)
		assert.Equal(t, "2", user.ID)
		assert.Equal(t, model.RoleDoctor, user.Role)
		assert.Equal(t, "mock-jwt-token-2", token)
	})

	t.Run("password is not checked", func(t *testing.T) {
		user, _, err := svc.Login(ctx, "admin@hospital.com", "")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "nobody@hospital.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Empty(t, token)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ADMIN@hospital.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_LoginThenVerify(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, u := range memory.SeedUsers() {
		t.Run(u.Role.String(), func(t *testing.T) {
			loggedIn, token, err := svc.Login(ctx, u.Email, "pw")
			require.NoError(t, err)

			verified, err := svc.Verify(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, loggedIn.ID, verified.ID)
			assert.Equal(t, loggedIn.Email, verified.Email)
			assert.Equal(t, loggedIn.Role, verified.Role)
		})
	}
}

func TestService_Register(t *testing.T) {
	repo := memory.NewUserRepository(memory.SeedUsers()...)
	svc := NewService(repo, auth.NewPrefixCodec(), WithHasher(security.NewBcryptHasher(4)))
	ctx := context.Background()

	req := &model.RegisterRequest{
		Email:    "new.nurse@hospital.com",
		Password: "s3cret!",
		Name:     "New Nurse",
		Role:     model.RoleNurse,
	}

	user, token, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, auth.TokenPrefix+user.ID, token)
	assert.Equal(t, model.RoleNurse, user.Role)
	assert.NotNil(t, user.CreatedAt)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, req.Password, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)))

	verified, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

// Registration does not reject an existing email; each call creates a distinct identity.
func TestService_RegisterDuplicateEmail(t *testing.T) {
	repo := memory.NewUserRepository(memory.SeedUsers()...)
	svc := NewService(repo, auth.NewPrefixCodec())
	ctx := context.Background()

	req := &model.RegisterRequest{Email: "patient@example.com", Password: "x", Name: "Second John", Role: model.RolePatient}

	first, _, err := svc.Register(ctx, req)
	require.NoError(t, err)
	second, _, err := svc.Register(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range users {
		if u.Email == req.Email {
			count++
		}
	}
	assert.Equal(t, 3, count)

	// Login by email still resolves to the first match, the seeded record
	found, _, err := svc.Login(ctx, req.Email, "")
	require.NoError(t, err)
	assert.Equal(t, "4", found.ID)
}

func TestService_Verify(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{name: "unknown id", token: "mock-jwt-token-999"},
		{name: "empty", token: ""},
		{name: "bare prefix", token: auth.TokenPrefix},
		{name: "garbage", token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Verify(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, user)
		})
	}
}

func TestService_VerifyJWT(t *testing.T) {
	codec := auth.NewJWTCodec("test-secret", "patio-health", time.Hour)
	svc := NewService(memory.NewUserRepository(memory.SeedUsers()...), codec)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "labtech@hospital.com", "")
	require.NoError(t, err)

	user, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleLabTechnician, user.Role)

	_, err = svc.Verify(ctx, "mock-jwt-token-6")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RepositoryFailure(t *testing.T) {
	repo := new(MockUserRepository)
	boom := errors.New("connection refused")
	repo.On("FindByEmail", mock.Anything, "admin@hospital.com").Return(nil, boom)
	repo.On("FindByID", mock.Anything, "1").Return(nil, boom)

	svc := NewService(repo, auth.NewPrefixCodec())
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "admin@hospital.com", "")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Verify(ctx, "mock-jwt-token-1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidToken)

	repo.AssertExpectations(t)
}

func TestService_RegisterIDFailure(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, auth.NewPrefixCodec(), WithIDGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))

	_, _, err := svc.Register(context.Background(), &model.RegisterRequest{Email: "a@b.c", Role: model.RoleAdmin})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_LatencyHonorsContext(t *testing.T) {
	svc := newTestService(WithLatency(Latency{Login: time.Hour, Register: time.Hour, Verify: time.Hour}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := svc.Login(ctx, "admin@hospital.com", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	_, err = svc.Verify(ctx, "mock-jwt-token-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_LatencyDelaysResult(t *testing.T) {
	svc := newTestService(WithLatency(Latency{Verify: 30 * time.Millisecond}))

	start := time.Now()
	_, err := svc.Verify(context.Background(), "mock-jwt-token-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestService_Metrics(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	svc := newTestService(WithMetrics(m))
	ctx := context.Background()

	_, _, _ = svc.Login(ctx, "admin@hospital.com", "")
	_, _, _ = svc.Login(ctx, "ghost@hospital.com", "")
	_, _ = svc.Verify(ctx, "mock-jwt-token-404")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.IdentityOperations.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IdentityOperations.WithLabelValues("login", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IdentityOperations.WithLabelValues("verify", "not_found")))
}

var _ repository.UserRepository = (*MockUserRepository)(nil)
