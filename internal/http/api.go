package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recipe-box/internal/domain"
	"recipe-box/internal/service"
)

const accountContextKey = "account"

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AccountService
	auth     service.AuthService
	recipes  service.RecipeService
	logger   *logrus.Logger
}

func NewHandler(accounts service.AccountService, auth service.AuthService, recipes service.RecipeService, logger *logrus.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		auth:     auth,
		recipes:  recipes,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/auth/user", h.register)
		api.POST("/auth/token", h.issueToken)

		me := api.Group("/auth/me", h.authRequired())
		{
			me.GET("", h.getProfile)
			me.PATCH("", h.updateProfile)
			me.POST("", func(ctx *gin.Context) {
				ctx.Header("Allow", "GET, PATCH")
				ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
			})
		}

		recipes := api.Group("/recipe", h.authRequired())
		{
			recipes.GET("", h.listRecipes)
			recipes.POST("", h.createRecipe)
			recipes.GET("/:id", h.getRecipe)
			recipes.PUT("/:id", h.replaceRecipe)
			recipes.PATCH("/:id", h.patchRecipe)
			recipes.DELETE("/:id", h.deleteRecipe)
		}

		admin := api.Group("/admin", h.authRequired(), h.staffRequired())
		{
			admin.GET("/accounts", h.listAccounts)
			admin.GET("/recipes", h.listAllRecipes)
		}
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func (h *Handler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authRequired resolves the caller from the Authorization header and aborts
// with 401 when the token is absent or unknown. Both "Bearer <key>" and
// "Token <key>" schemes are accepted.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerToken(c.GetHeader("Authorization"))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		account, err := h.auth.ResolveToken(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

func (h *Handler) staffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentAccount(c).IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case "bearer", "token":
		return fields[1]
	}
	return ""
}

func currentAccount(c *gin.Context) *domain.Account {
	return c.MustGet(accountContextKey).(*domain.Account)
}

// writeError translates service and repository errors to JSON responses.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		h.logger.WithField("request_id", c.GetString("request_id")).Errorf("internal error: %v", err)
	}
	c.JSON(status, body)
}
