package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shortly/internal/logger"
	"shortly/internal/middleware"
	"shortly/internal/models"
	"shortly/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles POST /auth/token and exchanges admin credentials for a
// bearer token
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if service.IsKind(err, service.KindUnauthorized) {
			logger.Warn().Str("ip", middleware.GetIP(c)).Msg("failed admin login")
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:     token.Token,
		TokenType: "Bearer",
		Subject:   token.Subject,
		ExpiresAt: token.ExpiresAt,
	})
}
