// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// saveAccountRequest is the JSON payload for creating or updating an account.
type saveAccountRequest struct {
	Email     string   `json:"email"`
	LastName  string   `json:"lastName"`
	FirstName string   `json:"firstName"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
}

// changePasswordRequest is the JSON payload for the password change operation.
type changePasswordRequest struct {
	ID              *int64 `json:"id"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// accountResponse is the outward account representation. The stored credential
// digest is never part of it.
type accountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAccountResponse(account *entity.Account) *accountResponse {
	if account == nil {
		return nil
	}

	return &accountResponse{
		ID:        account.ID,
		Email:     account.Email,
		LastName:  account.LastName,
		FirstName: account.FirstName,
		Roles:     account.RoleNames(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func toAccountResponses(accounts []*entity.Account) []*accountResponse {
	out := make([]*accountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountResponse(account))
	}

	return out
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the account creation request.
func (h *AccountHandler) Create(c echo.Context) error {
	var req saveAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account payload")
	}

	account, err := h.uc.Save(c.Request().Context(), &usecase.SaveAccountInput{
		Email:     req.Email,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(account), "Account created successfully")
}

// Update handles the account update request.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	var req saveAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account payload")
	}

	account, err := h.uc.Save(c.Request().Context(), &usecase.SaveAccountInput{
		ID:        &id,
		Email:     req.Email,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account updated successfully")
}

// GetByID handles the single account lookup request.
func (h *AccountHandler) GetByID(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	account, err := h.uc.FindByID(c.Request().Context(), &id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account retrieved successfully")
}

// GetByEmail handles the account lookup by email request.
func (h *AccountHandler) GetByEmail(c echo.Context) error {
	email := c.Param("email")

	account, err := h.uc.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account retrieved successfully")
}

// List handles the request for every account.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.uc.FindAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponses(accounts), "Accounts retrieved successfully")
}

// Delete handles the account deletion request.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	if err := h.uc.Delete(c.Request().Context(), &id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// ChangePassword handles the password change request.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change payload")
	}

	account, err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		ID:              req.ID,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Password changed successfully")
}

func parseAccountID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse account id")
	}

	return id, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
