package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/mocks"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testAccount() *entity.Account {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	return &entity.Account{
		ID:           1,
		Email:        "jane.doe@example.com",
		LastName:     "Doe",
		FirstName:    "Jane",
		PasswordHash: "$2a$10$secret.digest",
		Roles:        []*entity.Role{{ID: 1, AccountID: 1, Name: "ADMIN"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountHandler_Create(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("Save", mock.Anything, mock.MatchedBy(func(input *usecase.SaveAccountInput) bool {
		return input.ID == nil && input.Email == "jane.doe@example.com"
	})).Return(testAccount(), nil)

	c, rec := newTestContext(http.MethodPost, "/accounts",
		`{"email":"jane.doe@example.com","lastName":"Doe","firstName":"Jane","password":"Secret123!","roles":["ADMIN"]}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"email":"jane.doe@example.com"`)
	assert.Contains(t, body, `"roles":["ADMIN"]`)
	// The credential digest never leaves the service.
	assert.NotContains(t, body, "secret.digest")
	assert.NotContains(t, body, "password")
}

func TestAccountHandler_Update(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("Save", mock.Anything, mock.MatchedBy(func(input *usecase.SaveAccountInput) bool {
		return input.ID != nil && *input.ID == 1
	})).Return(testAccount(), nil)

	c, rec := newTestContext(http.MethodPut, "/accounts/1",
		`{"email":"jane.doe@example.com","lastName":"Doe","firstName":"Jane"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_Update_InvalidID(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	c, rec := newTestContext(http.MethodPut, "/accounts/abc", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccountHandler_GetByID(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("FindByID", mock.Anything, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 1
	})).Return(testAccount(), nil)

	c, rec := newTestContext(http.MethodGet, "/accounts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestAccountHandler_GetByEmail(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("FindByEmail", mock.Anything, "jane.doe@example.com").Return(testAccount(), nil)

	c, rec := newTestContext(http.MethodGet, "/accounts/email/jane.doe@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("jane.doe@example.com")

	require.NoError(t, h.GetByEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_List(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("FindAll", mock.Anything).Return([]*entity.Account{testAccount()}, nil)

	c, rec := newTestContext(http.MethodGet, "/accounts", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jane.doe@example.com"`)
}

func TestAccountHandler_Delete(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("Delete", mock.Anything, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 1
	})).Return(nil)

	c, rec := newTestContext(http.MethodDelete, "/accounts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	uc := mocks.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, nil)

	uc.On("ChangePassword", mock.Anything, mock.MatchedBy(func(input *usecase.ChangePasswordInput) bool {
		return input.ID != nil && *input.ID == 1 &&
			input.Password == "NewSecret!" && input.ConfirmPassword == "NewSecret!"
	})).Return(testAccount(), nil)

	c, rec := newTestContext(http.MethodPost, "/accounts/change-password",
		`{"id":1,"password":"NewSecret!","confirmPassword":"NewSecret!"}`)

	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
