package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udyamlens/udyamlens/internal/database"
	"github.com/udyamlens/udyamlens/internal/middleware"
	"github.com/udyamlens/udyamlens/internal/models"
)

func userRouter(t *testing.T) (pgxmock.PgxPoolIface, *gin.Engine) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := database.NewUserRepositoryWithQuerier(mock)
	auth := middleware.NewAuthMiddleware("test-secret", time.Hour)
	h := NewUserHandler(repo, auth, bcrypt.MinCost, quietLogger())

	router := gin.New()
	router.POST("/api/v1/users/register", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	return mock, router
}

func TestUserHandler_Register(t *testing.T) {
	mock, router := userRouter(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("sme@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "sme@example.com", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(models.RegisterRequest{Email: "sme@example.com", Password: "s3cret-pass"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "sme@example.com")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	mock, router := userRouter(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("sme@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	body, _ := json.Marshal(models.RegisterRequest{Email: "sme@example.com", Password: "s3cret-pass"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_Register_WeakPassword(t *testing.T) {
	_, router := userRouter(t)

	body, _ := json.Marshal(models.RegisterRequest{Email: "sme@example.com", Password: "short"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Login(t *testing.T) {
	mock, router := userRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("sme@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "sme@example.com", string(hash), time.Now().UTC()))

	body, _ := json.Marshal(models.LoginRequest{Email: "sme@example.com", Password: "s3cret-pass"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	mock, router := userRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("sme@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "sme@example.com", string(hash), time.Now().UTC()))

	body, _ := json.Marshal(models.LoginRequest{Email: "sme@example.com", Password: "wrong-password"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_Login_UnknownUser(t *testing.T) {
	mock, router := userRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	body, _ := json.Marshal(models.LoginRequest{Email: "nobody@example.com", Password: "whatever-pass"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
