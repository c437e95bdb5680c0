package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"chitrakalakar-app/internal/api/dto"
	"chitrakalakar-app/internal/api/respond"
	"chitrakalakar-app/internal/app/http/middleware"
	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Accounts interface {
	CreateAccount(ctx context.Context, a *users.Account) error
	FindAccount(ctx context.Context, id string) (*users.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*users.Account, error)
}

type Handler struct {
	accounts  Accounts
	jwtSecret string
	log       *zap.Logger
}

func NewHandler(accounts Accounts, jwtSecret string, log *zap.Logger) *Handler {
	return &Handler{accounts: accounts, jwtSecret: jwtSecret, log: log}
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (h *Handler) Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
		Location string `json:"location"`
		Bio      string `json:"bio"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	if !emailPattern.MatchString(input.Email) {
		respond.BadRequest(c, "Invalid email format")
		return
	}
	if !isPasswordStrong(input.Password) {
		respond.BadRequest(c, "Password must be at least 8 characters long and contain both letters and numbers")
		return
	}
	role, ok := users.ParseRole(input.Role)
	if !ok || role == users.RoleAdmin {
		respond.BadRequest(c, "Invalid role")
		return
	}

	if _, err := h.accounts.FindAccountByEmail(c.Request.Context(), input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		respond.Error(c, h.log, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	acc, err := users.NewAccount(input.Name, input.Email, string(hashed), role, time.Now())
	if err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	acc.Location = optional(input.Location)
	acc.Bio = optional(input.Bio)
	acc.Category = optional(input.Category)

	if err := h.accounts.CreateAccount(c.Request.Context(), acc); err != nil {
		h.log.Warn("signup insert failed", zap.String("email", acc.Email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, acc.ID, acc.Email, string(acc.Role), tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	msg := "Registration successful"
	if acc.Role == users.RoleArtist {
		msg = "Registration successful. Your artist account is pending admin approval."
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg, "token": token, "user": dto.Account(*acc)})
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	acc, err := h.accounts.FindAccountByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respond.Error(c, h.log, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !acc.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, acc.ID, acc.Email, string(acc.Role), tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": dto.Account(*acc)})
}

func (h *Handler) Me(c *gin.Context) {
	acc, err := h.accounts.FindAccount(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.Account(*acc)})
}
