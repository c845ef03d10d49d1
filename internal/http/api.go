package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"company-dashboard/internal/domain"
	"company-dashboard/internal/service"
)

const (
	sessionCookie = "user"

	// Nominatim rejects requests without an identifying agent.
	userAgent = "company-dashboard/1.0"
)

// Config carries the startup-resolved values the handlers need; everything
// here is read-only after construction.
type Config struct {
	Build         string
	DBPath        string
	StaticDir     string
	SecureCookies bool
	NewsFeedURL   string
	NewsSource    string
	ForecastURL   string
	GeocodeURL    string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	auth   service.AuthService
	logger *logrus.Logger
	cfg    Config
	client *http.Client
}

func NewHandler(users service.UserService, auth service.AuthService, logger *logrus.Logger, cfg Config) *Handler {
	return &Handler{
		users:  users,
		auth:   auth,
		logger: logger,
		cfg:    cfg,
		// no timeout on purpose: a slow upstream stalls only its own request
		client: &http.Client{},
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/me", h.me)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/logout", h.logoutRedirect)
		api.GET("/build", h.buildInfo)

		protected := api.Group("", h.requireSession)
		{
			protected.GET("/users", h.listUsers)
			protected.POST("/users", h.createUser)
			protected.PUT("/users/:id", h.updateUser)
			protected.DELETE("/users/:id", h.deleteUser)
			protected.GET("/news", h.getNews)
			protected.GET("/weather", h.getWeather)
		}
	}

	router.NoRoute(h.serveSPA)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
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

// requireSession gates protected routes on cookie presence. The cookie value
// is not verified further; this mirrors the intentionally weak demo trust
// model where the cookie itself is the whole session.
func (h *Handler) requireSession(c *gin.Context) {
	if _, err := c.Cookie(sessionCookie); err != nil {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) setSessionCookie(c *gin.Context, username string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, username, 0, "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) me(c *gin.Context) {
	var user any
	if v, err := c.Cookie(sessionCookie); err == nil {
		user = v
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.Authenticate(req.Username, req.Password); err != nil {
		c.String(http.StatusUnauthorized, "Bad login")
		return
	}

	h.setSessionCookie(c, req.Username)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// logoutRedirect supports plain browser navigation to /api/logout.
func (h *Handler) logoutRedirect(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) buildInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"build": h.cfg.Build,
		"db":    h.cfg.DBPath,
	})
}

type userRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list users")
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name, req.Role)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req.Name, req.Role)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrRoleRequired):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "User not found")
	default:
		h.logger.WithError(err).Error("user operation failed")
		c.String(http.StatusInternalServerError, "internal error")
	}
}
