package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/httpresp"
	"github.com/BruksfildServices01/shop-api/internal/models"
	ucAuth "github.com/BruksfildServices01/shop-api/internal/usecase/auth"
)

type AuthHandler struct {
	signup *ucAuth.Signup
	login  *ucAuth.Login
	log    logrus.FieldLogger
}

func NewAuthHandler(signup *ucAuth.Signup, login *ucAuth.Login, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{signup: signup, login: login, log: log}
}

// --------- Requests ---------

type SignupRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,notblank"`
	Password   string `json:"password" binding:"required"`
}

// --------- Views ---------

type UserView struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
}

func userView(u *models.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.signup.Execute(c.Request.Context(), ucAuth.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, gin.H{"message": "User registered"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user":    userView(res.User),
	})
}
