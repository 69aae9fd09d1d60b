package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = 11
	return nil
}
func (stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return false, nil
}

func issueToken(t *testing.T, svc service.AuthService, role models.Role) string {
	t.Helper()
	_, token, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@university.edu",
		Name:     "J. Doe",
		Password: "s3cret-pass",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, svc service.AuthService, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, Auth(svc)(next)(c)
}

func TestAuth_ValidToken(t *testing.T) {
	svc := service.NewAuthService(stubUserRepo{}, "test-secret")
	token := issueToken(t, svc, models.RoleStaff)

	c, err := runAuth(t, svc, "Bearer "+token)
	assert.NoError(t, err)
	assert.Equal(t, uint(11), c.Get(ContextUserID))
	assert.Equal(t, models.RoleStaff, c.Get(ContextUserRole))
}

func TestAuth_MissingHeader(t *testing.T) {
	svc := service.NewAuthService(stubUserRepo{}, "test-secret")

	_, err := runAuth(t, svc, "")
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_NotBearer(t *testing.T) {
	svc := service.NewAuthService(stubUserRepo{}, "test-secret")

	_, err := runAuth(t, svc, "Basic dXNlcjpwYXNz")
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	svc := service.NewAuthService(stubUserRepo{}, "test-secret")

	_, err := runAuth(t, svc, "Bearer garbage.token.here")
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextUserRole, models.RoleStaff)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole(models.RoleAdmin, models.RoleStaff)(next)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/zones", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextUserRole, models.RoleUser)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole(models.RoleAdmin)(next)(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRole_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole(models.RoleAdmin)(next)(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
