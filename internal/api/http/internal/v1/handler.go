package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/internal/service"
	"github.com/saludplus/backend/pkg/auth"
	"github.com/saludplus/backend/pkg/pdf"
)

// @title SaludPlus Registration API
// @version 1.0
// @description Doctor onboarding backend

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initRegistrationRoutes(v1)
}

func (h *Handler) newPDFGenerator() *pdf.Generator {
	return pdf.NewGenerator()
}
