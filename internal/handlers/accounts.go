package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hospital-services/internal/config"
	"hospital-services/internal/models"
	"hospital-services/internal/provision"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler handles authentication and account provisioning requests.
type AccountHandler struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Coordinator *provision.Coordinator
	Issuer      provision.TokenIssuer
}

// NewAccountHandler creates a new AccountHandler around the provisioning
// coordinator.
func NewAccountHandler(db *gorm.DB, cfg *config.Config, coordinator *provision.Coordinator, issuer provision.TokenIssuer) *AccountHandler {
	return &AccountHandler{DB: db, Cfg: cfg, Coordinator: coordinator, Issuer: issuer}
}

// JWTTokenIssuer issues the access/refresh pair and persists the refresh
// token so it can be rotated and revoked.
type JWTTokenIssuer struct {
	DB  *gorm.DB
	Cfg *config.Config
}

var _ provision.TokenIssuer = (*JWTTokenIssuer)(nil)

// Issue generates the token pair for an account and stores the refresh token.
func (i *JWTTokenIssuer) Issue(account *models.Account) (string, string, error) {
	access, refresh, err := utils.GenerateTokens(account, i.Cfg)
	if err != nil {
		return "", "", err
	}

	stored := models.RefreshToken{
		UserID:    account.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(i.Cfg.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := i.DB.Create(&stored).Error; err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// RegisterRequest represents the request body for self-registration. The
// role is always patient; elevated roles go through the admin endpoint.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register handles self-registration: it provisions an account plus its
// patient record through the coordinator.
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.emailAvailable(c, req.Email) {
		return
	}

	account := models.Account{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     models.RolePatient,
		IsActive: true,
	}
	if err := account.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	outcome := h.Coordinator.Provision(c.Request.Context(), &account)
	h.respondProvision(c, outcome, models.RolePatient, "Registered and patient record created")
}

// CreateAccountRequest represents the admin provisioning request body.
type CreateAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=patient doctor admin"`
}

// CreateAccount handles admin provisioning of an account with an explicit
// role. Patient and doctor roles get a downstream role record; admin is
// promoted locally and never triggers a downstream call.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RolePatient
	}

	if !h.emailAvailable(c, req.Email) {
		return
	}

	account := models.Account{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}
	if err := account.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	outcome := h.Coordinator.Provision(c.Request.Context(), &account)

	message := fmt.Sprintf("User and %s record created", role)
	if role == models.RoleAdmin {
		message = "Admin user created"
	}
	h.respondProvision(c, outcome, role, message)
}

// emailAvailable rejects the request when an account with this email already
// exists. Sends the error response itself and returns false in that case.
func (h *AccountHandler) emailAvailable(c *gin.Context, email string) bool {
	var existing models.Account
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.BadRequest(c, "Account with this email already exists")
		return false
	}
	if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return false
	}
	return true
}

// respondProvision maps a coordinator outcome to the wire. Failure responses
// carry the raw downstream diagnostic so the operator can see which hop
// failed and why.
func (h *AccountHandler) respondProvision(c *gin.Context, outcome provision.Outcome, role models.Role, message string) {
	switch outcome.Status {
	case provision.FailedLocal:
		utils.ErrorWithDetails(c, http.StatusInternalServerError, "Failed to create user", outcome.Err.Error())
	case provision.FailedPromotion:
		utils.ErrorWithDetails(c, http.StatusInternalServerError, "Failed to set admin flags", outcome.Err.Error())
	case provision.FailedUnreachable:
		utils.ErrorWithDetails(c, http.StatusServiceUnavailable,
			fmt.Sprintf("%s service unreachable", capitalize(string(role))), outcome.Err.Error())
	case provision.FailedRejected:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": fmt.Sprintf("Failed to create %s record", role),
			fmt.Sprintf("%s_service_response", role): rawOrString(outcome.Downstream),
		})
	case provision.Completed:
		resp := gin.H{
			"message": message,
			"user_id": outcome.Account.ID,
			"access":  outcome.AccessToken,
			"refresh": outcome.RefreshToken,
		}
		if len(outcome.Downstream) > 0 {
			resp[string(role)] = rawOrString(outcome.Downstream)
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// rawOrString embeds a downstream body as JSON when it is valid JSON, or as
// a plain string otherwise, so a malformed downstream payload cannot break
// our own response encoding.
func rawOrString(body json.RawMessage) interface{} {
	if json.Valid(body) {
		return body
	}
	return string(body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles account login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var account models.Account
	if err := h.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !account.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !account.IsActive {
		utils.Unauthorized(c, "Account is disabled")
		return
	}

	access, refresh, err := h.Issuer.Issue(&account)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"access":  access,
		"refresh": refresh,
		"user":    account.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (h *AccountHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var stored models.RefreshToken
	if err := h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		req.RefreshToken, claims.UserID, false, time.Now()).First(&stored).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	var account models.Account
	if err := h.DB.First(&account, claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to find account associated with token: "+err.Error())
		return
	}

	stored.IsRevoked = true
	if err := h.DB.Save(&stored).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	access, refresh, err := h.Issuer.Issue(&account)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"access":  access,
		"refresh": refresh,
	})
}

// LogoutRequest represents the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Logout revokes the presented refresh token.
func (h *AccountHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var stored models.RefreshToken
	if err := h.DB.Where("token = ? AND is_revoked = ?", req.RefreshToken, false).First(&stored).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Already invalid, which is acceptable for logout.
			c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	stored.IsRevoked = true
	stored.ExpiresAt = time.Now()
	if err := h.DB.Save(&stored).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetUsers lists accounts, optionally filtered by the q, full_name or email
// query parameters (substring match).
func (h *AccountHandler) GetUsers(c *gin.Context) {
	query := h.DB.Order("created_at desc")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", like, like)
	}
	if fullName := c.Query("full_name"); fullName != "" {
		query = query.Where("full_name LIKE ?", "%"+fullName+"%")
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("email LIKE ?", "%"+email+"%")
	}

	var accounts []models.Account
	if err := query.Find(&accounts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.AccountSanitized, 0, len(accounts))
	for i := range accounts {
		sanitized = append(sanitized, accounts[i].Sanitize())
	}
	c.JSON(http.StatusOK, sanitized)
}

// GetUserByID fetches a single account.
func (h *AccountHandler) GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := h.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, account.Sanitize())
}

// UpdateUserRequest represents the request body for updating an account.
type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUser updates an account's mutable fields.
func (h *AccountHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var account models.Account
	if err := h.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		account.FullName = req.FullName
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&account).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, account.Sanitize())
}

// DeleteUser removes an account by explicit admin action.
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := h.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&account).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
