package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hms/hms-api/internal/model"
)

type fakeAuthService struct {
	claims *model.TokenClaims
	err    error
}

func (s *fakeAuthService) Login(_ context.Context, _, _ string) (*model.TokenResponse, error) {
	panic("not used")
}

func (s *fakeAuthService) ValidateToken(_ string) (*model.TokenClaims, error) {
	return s.claims, s.err
}

func newAuthTestRouter(svc *fakeAuthService, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(svc)

	r := gin.New()
	group := r.Group("/", mw.Authenticate())
	if len(allowed) > 0 {
		group.Use(mw.RequireRoles(allowed...))
	}
	group.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUsername))
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{})
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{})

	for _, header := range []string{"tok123", "Basic tok123"} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{err: errors.New("expired")})
	w := doRequest(r, "Bearer tok123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	svc := &fakeAuthService{claims: &model.TokenClaims{
		UserID:   uuid.New(),
		Username: "drsmith",
		Roles:    []string{model.RoleDoctor},
	}}
	r := newAuthTestRouter(svc)

	w := doRequest(r, "Bearer tok123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "drsmith", w.Body.String())
}

func TestRequireRolesAllowsIntersection(t *testing.T) {
	svc := &fakeAuthService{claims: &model.TokenClaims{
		UserID:   uuid.New(),
		Username: "nurseamy",
		Roles:    []string{model.RoleNurse},
	}}
	r := newAuthTestRouter(svc, AllowedRecords...)

	w := doRequest(r, "Bearer tok123")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsOutsider(t *testing.T) {
	svc := &fakeAuthService{claims: &model.TokenClaims{
		UserID:   uuid.New(),
		Username: "reception1",
		Roles:    []string{model.RoleReceptionist},
	}}
	r := newAuthTestRouter(svc, AllowedRecords...)

	w := doRequest(r, "Bearer tok123")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name    string
		caller  []string
		allowed []string
		want    bool
	}{
		{"single match", []string{model.RoleDoctor}, AllowedClinical, true},
		{"multi role one match", []string{model.RolePatient, model.RoleNurse}, AllowedRecords, true},
		{"no match", []string{model.RolePatient}, AllowedClinical, false},
		{"empty caller", nil, AllowedClinical, false},
		{"empty allowed", []string{model.RoleAdmin}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAnyRole(tt.caller, tt.allowed))
		})
	}
}
