package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizgem/internal/dto"
	"quizgem/internal/middleware"
	"quizgem/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Get the identity provider consent page URL
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.RedirectResponse
// @Router /auth/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.RedirectResponse{RedirectURL: c.authService.LoginURL()})
}

// Callback godoc
// @Summary Exchange a provider access token for a session token
// @Tags Auth
// @Produce json
// @Param access_token query string true "Provider access token"
// @Param refresh_token query string false "Provider refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Missing access token"
// @Failure 401 {object} dto.ErrorResponse "Provider rejected the token"
// @Router /auth/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	accessToken := ctx.Query("access_token")
	if accessToken == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No access token found in the callback"})
		return
	}

	token, err := c.authService.ResolveToken(ctx.Request.Context(), accessToken)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token})
}

// Logout godoc
// @Summary Sign out of the identity provider
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.SignOut(ctx.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Logout: provider sign-out failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to sign out"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "success sign out"})
}

// RefreshToken godoc
// @Summary Get the token re-issued by the auth guard
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Router /auth/refresh-token [get]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: ctx.GetString(middleware.ContextAccessToken)})
}
