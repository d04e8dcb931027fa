package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recipe-box/internal/domain"
	"recipe-box/internal/service"
)

// registration enforces a minimum password length on top of the store's
// non-empty invariant
const minPasswordLen = 5

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProfileResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AdminAccountResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Password != "" && len(req.Password) < minPasswordLen {
		h.writeError(c, service.NewValidationError(
			"password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen),
		))
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, accountToResponse(account))
}

func (h *Handler) issueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) getProfile(c *gin.Context) {
	account := currentAccount(c)
	c.JSON(http.StatusOK, profileToResponse(account))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Password != nil && len(*req.Password) < minPasswordLen {
		h.writeError(c, service.NewValidationError(
			"password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen),
		))
		return
	}

	account, err := h.accounts.UpdateProfile(c.Request.Context(), currentAccount(c).ID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToResponse(account))
}

func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]AdminAccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = AdminAccountResponse{
			ID:          accounts[i].ID,
			Email:       accounts[i].Email,
			FirstName:   accounts[i].FirstName,
			LastName:    accounts[i].LastName,
			IsActive:    accounts[i].IsActive,
			IsStaff:     accounts[i].IsStaff,
			IsSuperuser: accounts[i].IsSuperuser,
			CreatedAt:   accounts[i].CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func accountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
}

func profileToResponse(account *domain.Account) ProfileResponse {
	return ProfileResponse{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}
}
