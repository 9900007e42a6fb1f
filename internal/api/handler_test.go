package api_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/facegate/facegate/internal/api"
	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/internal/service"
)

type fakeService struct {
	facialDecision entity.AccessDecision
	facialErr      error
	pinDecision    entity.AccessDecision
	pinErr         error
	employee       entity.Employee
	employeeErr    error
	created        entity.Employee
	createErr      error
	enrollErr      error
	events         []entity.AccessEvent
	eventErr       error

	lastFilter entity.AccessFilter
	lastPage   entity.Page
}

func (f *fakeService) FacialAccess(_ context.Context, _ []byte, _ service.AccessRequest) (entity.AccessDecision, error) {
	return f.facialDecision, f.facialErr
}

func (f *fakeService) PINAccess(_ context.Context, _ string, _ service.AccessRequest) (entity.AccessDecision, error) {
	return f.pinDecision, f.pinErr
}

func (f *fakeService) EnrollFace(context.Context, int64, []byte) error { return f.enrollErr }
func (f *fakeService) UnenrollFace(context.Context, int64) error      { return f.enrollErr }

func (f *fakeService) CreateEmployee(context.Context, service.CreateEmployeeInput) (entity.Employee, error) {
	return f.created, f.createErr
}

func (f *fakeService) GetEmployee(context.Context, int64) (entity.Employee, error) {
	return f.employee, f.employeeErr
}

func (f *fakeService) ListEmployees(context.Context) ([]entity.Employee, error) {
	return []entity.Employee{f.employee}, f.employeeErr
}

func (f *fakeService) DeleteEmployee(context.Context, int64) error { return f.employeeErr }

func (f *fakeService) GetArea(context.Context, string) (entity.Area, error) {
	return entity.Area{ID: "AREA001", Name: "Assembly", AccessLevel: 2, Active: true}, nil
}

func (f *fakeService) ListAreas(context.Context) ([]entity.Area, error) {
	return []entity.Area{{ID: "AREA001", Name: "Assembly", AccessLevel: 2, Active: true}}, nil
}

func (f *fakeService) GetAccess(context.Context, uuid.UUID) (entity.AccessEvent, error) {
	if len(f.events) == 0 {
		return entity.AccessEvent{}, f.eventErr
	}

	return f.events[0], f.eventErr
}

func (f *fakeService) ListAccesses(
	_ context.Context, filter entity.AccessFilter, page entity.Page,
) ([]entity.AccessEvent, entity.PageInfo, error) {
	f.lastFilter = filter
	f.lastPage = page

	return f.events, entity.PageInfo{Total: len(f.events), Page: 1, PageSize: 10, TotalPages: 1}, f.eventErr
}

func newTestServer(t *testing.T, s *fakeService, jwtPEM string) *httptest.Server {
	t.Helper()

	mw, err := api.NewMiddleware(jwtPEM)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(s), mw))
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestHandler_FacialAccess(t *testing.T) {
	t.Parallel()

	empID := int64(7)
	svc := &fakeService{
		facialDecision: entity.AccessDecision{
			Permitted:  true,
			Employee:   &entity.Employee{ID: empID, FirstName: "Ana", LastName: "Torres"},
			AreaID:     "AREA001",
			Type:       entity.AccessEntry,
			Method:     entity.MethodFacial,
			Confidence: 0.93,
			EventID:    uuid.Must(uuid.NewV4()),
		},
	}
	srv := newTestServer(t, svc, "")

	resp := postJSON(t, srv.URL+"/api/access/facial", api.FacialAccessRequest{
		Image:  []byte("jpeg"),
		AreaID: "AREA001",
		Type:   "Entry",
		Device: "gate-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.AccessDecisionResponse](t, resp)
	require.True(t, body.Permitted)
	require.Equal(t, "Facial", body.Method)
	require.Equal(t, "Ana Torres", body.FullName)
	require.NotNil(t, body.Confidence)
	require.InDelta(t, 0.93, *body.Confidence, 1e-9)
	require.NotEmpty(t, body.EventID)
}

func TestHandler_FacialAccessDenied(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		facialDecision: entity.AccessDecision{
			Permitted: false,
			Reason:    entity.DenialNotRecognized,
			AreaID:    "AREA001",
			Type:      entity.AccessEntry,
			Method:    entity.MethodFacial,
		},
	}
	srv := newTestServer(t, svc, "")

	resp := postJSON(t, srv.URL+"/api/access/facial", api.FacialAccessRequest{
		Image:  []byte("jpeg"),
		AreaID: "AREA001",
		Type:   "Entry",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "a denial is a decision, not an error")

	body := decodeBody[api.AccessDecisionResponse](t, resp)
	require.False(t, body.Permitted)
	require.Equal(t, string(entity.DenialNotRecognized), body.Reason)
	require.Empty(t, body.EventID)
}

func TestHandler_FacialAccessMissingImage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeService{}, "")

	resp := postJSON(t, srv.URL+"/api/access/facial", api.FacialAccessRequest{
		AreaID: "AREA001",
		Type:   "Entry",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_PINAccessBadFormat(t *testing.T) {
	t.Parallel()

	svc := &fakeService{pinErr: entity.ErrPinFormat}
	srv := newTestServer(t, svc, "")

	resp := postJSON(t, srv.URL+"/api/access/pin", api.PINAccessRequest{
		PIN:    "12a",
		AreaID: "AREA001",
		Type:   "Entry",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandler_GetEmployeeNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeService{employeeErr: entity.ErrNotFound}
	srv := newTestServer(t, svc, "")

	resp, err := http.Get(srv.URL + "/api/employees/404")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_GetEmployeeBadID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeService{}, "")

	resp, err := http.Get(srv.URL + "/api/employees/abc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateEmployee(t *testing.T) {
	t.Parallel()

	svc := &fakeService{created: entity.Employee{
		ID:          3,
		FirstName:   "Ana",
		LastName:    "Torres",
		NationalID:  "22333444",
		Email:       "ana@example.com",
		Role:        entity.RoleOperator,
		Status:      entity.EmployeeActive,
		AreaID:      "AREA001",
		AccessLevel: 2,
		PINHash:     []byte("$2a$10$hash"),
		CreatedAt:   time.Now(),
	}}
	srv := newTestServer(t, svc, "")

	resp := postJSON(t, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		FirstName:   "Ana",
		LastName:    "Torres",
		NationalID:  "22333444",
		Email:       "ana@example.com",
		Role:        "Operator",
		Status:      "Active",
		AreaID:      "AREA001",
		AccessLevel: 2,
		PIN:         "5678",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody[api.EmployeeResponse](t, resp)
	require.Equal(t, int64(3), body.ID)
	require.True(t, body.HasPIN)
}

func TestHandler_CreateEmployeeConflict(t *testing.T) {
	t.Parallel()

	svc := &fakeService{createErr: entity.ErrAlreadyExists}
	srv := newTestServer(t, svc, "")

	resp := postJSON(t, srv.URL+"/api/employees", api.CreateEmployeeRequest{NationalID: "22333444"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_ListAccessesFilters(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	srv := newTestServer(t, svc, "")

	resp, err := http.Get(srv.URL + "/api/access?employee_id=7&area_id=AREA001&type=Entry&page=2&page_size=20")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.lastFilter.EmployeeID)
	require.Equal(t, int64(7), *svc.lastFilter.EmployeeID)
	require.Equal(t, "AREA001", svc.lastFilter.AreaID)
	require.Equal(t, entity.AccessEntry, svc.lastFilter.Type)
	require.Equal(t, entity.Page{Number: 2, Size: 20}, svc.lastPage)
}

func TestHandler_ListAccessesBadType(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeService{}, "")

	resp, err := http.Get(srv.URL + "/api/access?type=Sideways")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetAccessBadUUID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeService{}, "")

	resp, err := http.Get(srv.URL + "/api/access/not-a-uuid")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func operatorKeyAndToken(t *testing.T) (publicPEM, token string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	token, err = jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "operator-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	return publicPEM, token
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	publicPEM, token := operatorKeyAndToken(t)
	srv := newTestServer(t, &fakeService{}, publicPEM)

	// no token
	resp, err := http.Get(srv.URL + "/api/employees")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// garbage token
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/employees", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// valid token
	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/employees", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// access terminals do not need a token
	resp, err = http.Get(srv.URL + "/api/areas")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "operator-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	srv := newTestServer(t, &fakeService{}, publicPEM)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/employees", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
