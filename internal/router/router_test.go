package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patio-health/internal/dashboard"
	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository/memory"
	"github.com/jwalitptl/patio-health/internal/service/directory"
	"github.com/jwalitptl/patio-health/internal/service/identity"
	"github.com/jwalitptl/patio-health/internal/storage"
	"github.com/jwalitptl/patio-health/pkg/auth"
	"github.com/jwalitptl/patio-health/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type sessionData struct {
	User            *model.User `json:"user"`
	Token           *string     `json:"token"`
	IsAuthenticated bool        `json:"is_authenticated"`
	Redirect        string      `json:"redirect"`
}

func newTestRouter(t *testing.T, factory func() middleware.StorageFactory) http.Handler {
	t.Helper()

	users := memory.NewUserRepository(memory.SeedUsers()...)
	reg := prometheus.NewRegistry()

	cookie := middleware.CookieConfig{MaxAge: time.Hour}
	storageFactory := middleware.CookieTokenStorage(cookie)
	if factory != nil {
		storageFactory = factory()
	}

	r := NewRouter(Config{
		Provider:       identity.NewService(users, auth.NewPrefixCodec()),
		Storage:        storageFactory,
		Directory:      directory.NewService(users, memory.NewAppointmentRepository(), zerolog.Nop()),
		Metrics:        metrics.New("test", reg),
		Gatherer:       reg,
		Logger:         zerolog.Nop(),
		RateLimit:      1000,
		RateBurst:      1000,
		RequestTimeout: 5 * time.Second,
	})
	r.Setup()
	return r.Handler()
}

func do(h http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func tokenCookie(userID string) *http.Cookie {
	return &http.Cookie{Name: middleware.CookieToken, Value: auth.TokenPrefix + userID}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func viewName(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var v dashboard.View
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &v))
	return v.Name
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var workspaces = map[model.Role]struct {
	path string
	view string
}{
	model.RoleAdmin:         {"/admin", dashboard.ViewAdmin},
	model.RoleDoctor:        {"/doctor", dashboard.ViewDoctor},
	model.RoleNurse:         {"/nurse", dashboard.ViewNurse},
	model.RolePatient:       {"/patient", dashboard.ViewPatient},
	model.RoleReceptionist:  {"/receptionist", dashboard.ViewReceptionist},
	model.RoleLabTechnician: {"/lab", dashboard.ViewLabTechnician},
}

func TestRoleGatedRouting(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, visitor := range memory.SeedUsers() {
		for role, ws := range workspaces {
			t.Run(visitor.Role.String()+" visits "+ws.path, func(t *testing.T) {
				w := do(h, http.MethodGet, ws.path, nil, tokenCookie(visitor.ID))

				if visitor.Role == role {
					require.Equal(t, http.StatusOK, w.Code)
					assert.Equal(t, ws.view, viewName(t, w))
					return
				}
				assert.Equal(t, http.StatusFound, w.Code)
				assert.Equal(t, "/dashboard", w.Header().Get("Location"))
			})
		}
	}
}

func TestNurseSubroutes(t *testing.T) {
	h := newTestRouter(t, nil)

	routes := map[string]string{
		"/nurse/patients":    dashboard.ViewNursePatients,
		"/nurse/vitals":      dashboard.ViewNurseVitals,
		"/nurse/medications": dashboard.ViewNurseMedication,
		"/nurse/notes":       dashboard.ViewNurseNotes,
	}

	for path, view := range routes {
		w := do(h, http.MethodGet, path, nil, tokenCookie("3"))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, view, viewName(t, w))

		w = do(h, http.MethodGet, path, nil, tokenCookie("2"))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	}
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	h := newTestRouter(t, nil)

	paths := []string{"/dashboard", "/profile", "/settings", "/nurse/notes"}
	for _, ws := range workspaces {
		paths = append(paths, ws.path)
	}

	for _, p := range paths {
		w := do(h, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusFound, w.Code, p)
		assert.Equal(t, "/login", w.Header().Get("Location"), p)
	}
}

func TestDashboardResolvesByRole(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, u := range memory.SeedUsers() {
		w := do(h, http.MethodGet, "/dashboard", nil, tokenCookie(u.ID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, workspaces[u.Role].view, viewName(t, w))
	}
}

func TestPublicRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	for path, view := range map[string]string{
		"/":         dashboard.ViewLanding,
		"/login":    dashboard.ViewLogin,
		"/register": dashboard.ViewRegister,
	} {
		w := do(h, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, view, viewName(t, w))
	}

	w := do(h, http.MethodGet, "/index", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, cookies := range [][]*http.Cookie{nil, {tokenCookie("1")}} {
		w := do(h, http.MethodGet, "/no/such/page", nil, cookies...)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dashboard.ViewNotFound, viewName(t, w))
	}
}

func TestStaleTokenIsClearedSilently(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodGet, "/dashboard", nil, &http.Cookie{Name: middleware.CookieToken, Value: "mock-jwt-token-999"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := findCookie(w, middleware.CookieToken)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestLoginFlow(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{Email: "dr.smith@hospital.com", Password: "whatever"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sess sessionData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "dr.smith@hospital.com", sess.User.Email)
	assert.Equal(t, "/dashboard", sess.Redirect)
	require.NotNil(t, sess.Token)

	cookie := findCookie(w, middleware.CookieToken)
	require.NotNil(t, cookie)
	assert.Equal(t, *sess.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// the next page load hydrates from the cookie
	w = do(h, http.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dashboard.ViewDoctor, viewName(t, w))

	w = do(h, http.MethodGet, "/api/v1/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.True(t, sess.IsAuthenticated)

	w = do(h, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	assert.Nil(t, sess.Token)
	cleared := findCookie(w, middleware.CookieToken)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestLogoutWhenAnonymous(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sess sessionData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.False(t, sess.IsAuthenticated)
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{Email: "unknown@x.com", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decode(t, w).Message)
	assert.Nil(t, findCookie(w, middleware.CookieToken))
}

func TestLoginValidation(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	fields := map[string]string{}
	for _, e := range env.Errors {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Field is required", fields["password"])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterFlow(t *testing.T) {
	h := newTestRouter(t, nil)

	req := model.RegisterRequest{
		Email:    "new.doc@hospital.com",
		Password: "secret1",
		Name:     "Dr. New",
		Role:     model.RoleDoctor,
	}

	w := do(h, http.MethodPost, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var first sessionData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &first))
	assert.True(t, first.IsAuthenticated)
	assert.Equal(t, model.RoleDoctor, first.User.Role)

	cookie := findCookie(w, middleware.CookieToken)
	require.NotNil(t, cookie)
	w = do(h, http.MethodGet, "/doctor", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// the same email registers again as a distinct account
	w = do(h, http.MethodPost, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)
	var second sessionData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &second))
	assert.NotEqual(t, first.User.ID, second.User.ID)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, role := range []string{"employee", "surgeon"} {
		w := do(h, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email":    "x@hospital.com",
			"password": "secret1",
			"name":     "X",
			"role":     role,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, role)
		env := decode(t, w)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "role", env.Errors[0].Field)
	}
}

func TestBearerHeader(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer mock-jwt-token-5")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var sess sessionData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, model.RoleReceptionist, sess.User.Role)

	req = httptest.NewRequest(http.MethodGet, "/receptionist", nil)
	req.Header.Set("Authorization", "Bearer mock-jwt-token-5")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackendStorageMode(t *testing.T) {
	backend := storage.NewMemoryBackend(time.Hour, time.Minute)
	h := newTestRouter(t, func() middleware.StorageFactory {
		return middleware.BackendTokenStorage(backend, middleware.CookieConfig{MaxAge: time.Hour})
	})

	w := do(h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{Email: "labtech@hospital.com", Password: "x"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Nil(t, findCookie(w, middleware.CookieToken))
	sid := findCookie(w, middleware.CookieClientID)
	require.NotNil(t, sid)

	stored, err := backend.Get(context.Background(), storage.Key(sid.Value))
	require.NoError(t, err)
	assert.Equal(t, "mock-jwt-token-6", stored)

	w = do(h, http.MethodGet, "/lab", nil, sid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dashboard.ViewLabTechnician, viewName(t, w))

	w = do(h, http.MethodPost, "/api/v1/auth/logout", nil, sid)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/lab", nil, sid)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestDirectoryAPI(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(h, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(h, http.MethodGet, "/api/v1/users", nil, tokenCookie("4"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(h, http.MethodGet, "/api/v1/users", nil, tokenCookie("1"))
	require.Equal(t, http.StatusOK, w.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &users))
	assert.Len(t, users, 6)

	w = do(h, http.MethodGet, "/api/v1/doctors", nil, tokenCookie("4"))
	require.Equal(t, http.StatusOK, w.Code)
	var doctors []model.Doctor
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &doctors))
	require.Len(t, doctors, 1)

	w = do(h, http.MethodPost, "/api/v1/appointments", model.BookAppointmentRequest{
		DoctorID: "1",
		Date:     "2024-03-01",
		Time:     "10:00",
	}, tokenCookie("4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPost, "/api/v1/appointments", model.BookAppointmentRequest{
		DoctorID: doctors[0].ID,
		Date:     "2024-03-01",
		Time:     "10:00",
		Reason:   "Checkup",
	}, tokenCookie("4"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booked model.Appointment
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &booked))
	assert.Equal(t, model.AppointmentPending, booked.Status)
	assert.Equal(t, "4", booked.PatientID)
	assert.Equal(t, "Dr. Sarah Smith", booked.DoctorName)

	w = do(h, http.MethodGet, "/api/v1/appointments", nil, tokenCookie("4"))
	require.Equal(t, http.StatusOK, w.Code)
	var mine []model.Appointment
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &mine))
	assert.Len(t, mine, 2)

	// the doctor picked from /doctors sees the booking too
	w = do(h, http.MethodGet, "/api/v1/appointments", nil, tokenCookie(doctors[0].ID))
	require.Equal(t, http.StatusOK, w.Code)
	var theirs []model.Appointment
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &theirs))
	var ids []string
	for _, a := range theirs {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, booked.ID)
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/health/ready", nil).Code)

	_ = do(h, http.MethodGet, "/dashboard", nil, tokenCookie("1"))
	w := do(h, http.MethodGet, "/api/v1/health/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_session_transitions_total")
	assert.Contains(t, w.Body.String(), "test_session_guard_decisions_total")
}

type countingProvider struct {
	identity.Provider
	verifies atomic.Int32
}

func (p *countingProvider) Verify(ctx context.Context, token string) (*model.User, error) {
	p.verifies.Add(1)
	return p.Provider.Verify(ctx, token)
}

func TestThrottledLoginSkipsHydration(t *testing.T) {
	users := memory.NewUserRepository(memory.SeedUsers()...)
	provider := &countingProvider{Provider: identity.NewService(users, auth.NewPrefixCodec())}

	r := NewRouter(Config{
		Provider:  provider,
		Storage:   middleware.CookieTokenStorage(middleware.CookieConfig{MaxAge: time.Hour}),
		Directory: directory.NewService(users, memory.NewAppointmentRepository(), zerolog.Nop()),
		Logger:    zerolog.Nop(),
		RateLimit: 0.001,
		RateBurst: 1,
	})
	r.Setup()
	h := r.Handler()

	login := model.LoginRequest{Email: "admin@hospital.com", Password: "x"}

	w := do(h, http.MethodPost, "/api/v1/auth/login", login, tokenCookie("1"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(1), provider.verifies.Load())

	w = do(h, http.MethodPost, "/api/v1/auth/login", login, tokenCookie("1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, int32(1), provider.verifies.Load())

	w = do(h, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "x@hospital.com", "password": "secret1", "name": "X", "role": "nurse",
	}, tokenCookie("1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, int32(1), provider.verifies.Load())

	// unthrottled routes still hydrate
	w = do(h, http.MethodGet, "/api/v1/auth/session", nil, tokenCookie("1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(2), provider.verifies.Load())
}
