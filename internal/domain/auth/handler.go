package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	jwtsvc "realty/internal/pkg/jwt"
	"realty/internal/pkg/response"
)

type Handler struct {
	db  *gorm.DB
	jwt *jwtsvc.Service
}

func NewHandler(db *gorm.DB, jwt *jwtsvc.Service) *Handler {
	return &Handler{db: db, jwt: jwt}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login and issues an admin JWT.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var user User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		response.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": time.Now().Add(h.jwt.TTL()).UTC().Format(time.RFC3339),
	})
}
