package http

import (
	"errors"
	"time"

	"studyhub/internal/auth/domain/model"
	"studyhub/internal/auth/usecase"
	"studyhub/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Post carries the inner payload of the response envelope.
type Post struct {
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

// Data wraps the post payload.
type Data struct {
	Post Post `json:"post"`
}

// Envelope is the JSON response shape shared by every login endpoint.
// The status strings ("succes", "fail", "failed") are part of the external
// contract consumed by the frontend.
type Envelope struct {
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHTTPHandler handles HTTP requests for login and session management
type LoginHTTPHandler struct {
	usecase        usecase.LoginUsecaseInterface
	log            logger.Logger
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
}

// NewLoginHTTPHandler creates a new login HTTP handler
func NewLoginHTTPHandler(
	uc usecase.LoginUsecaseInterface,
	log logger.Logger,
	cookieName, cookiePath, cookieDomain string,
	cookieSecure, cookieHTTPOnly bool,
	cookieSameSite string,
) *LoginHTTPHandler {
	return &LoginHTTPHandler{
		usecase:        uc,
		log:            log.WithComponent("login-handler"),
		cookieName:     cookieName,
		cookiePath:     cookiePath,
		cookieDomain:   cookieDomain,
		cookieSecure:   cookieSecure,
		cookieHTTPOnly: cookieHTTPOnly,
		cookieSameSite: cookieSameSite,
	}
}

// SetupLoginRoutes binds the login endpoints. The input-validation gate runs
// before the login handler itself.
func (h *LoginHTTPHandler) SetupLoginRoutes(router fiber.Router) {
	login := router.Group("/login")
	login.Post("/", h.ValidateUserInput, h.ValidateLogin)
	login.Get("/", h.GetUserBySession)
	login.Delete("/", h.LogUserOut)
}

// ValidateLogin authenticates the submitted credentials and issues a session
// on success. Unknown email, wrong password and data-access failure all map
// to the same generic 404 so the response never reveals whether the email
// exists.
func (h *LoginHTTPHandler) ValidateLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.wrongCredentials(c)
	}

	user, err := h.usecase.GetLogin(c.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, usecase.ErrUserNotFound) {
			h.log.Errorf("credential lookup failed: %v", err)
		}
		return h.wrongCredentials(c)
	}

	if !h.usecase.ValidatePassword(req.Password, user.Password) {
		return h.wrongCredentials(c)
	}

	h.logUserIn(c, user.ID)

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status: "succes",
		Data:   Data{Post: Post{Message: "Correct email and password!"}},
	})
}

// logUserIn issues a fresh session for the user, sets the session cookie and
// persists the session row. A failed write is logged and degrades silently,
// matching the swallow-and-log policy of the storage layer.
func (h *LoginHTTPHandler) logUserIn(c *fiber.Ctx, userID int64) {
	session := model.NewSession(userID)
	h.setCookie(c, session.SessionID)

	if _, err := h.usecase.SaveSession(c.Context(), session.UserID, session.SessionID, session.ExpiresAt); err != nil {
		h.log.Errorf("session persist failed: %v", err)
	}
}

// GetUserBySession resolves the session cookie to its owning user.
func (h *LoginHTTPHandler) GetUserBySession(c *fiber.Ctx) error {
	sessionID := c.Cookies(h.cookieName)

	session, err := h.usecase.GetSession(c.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, usecase.ErrSessionNotFound) {
			h.log.Errorf("session lookup failed: %v", err)
		}
		return h.noSessionFound(c)
	}
	if session.IsExpired() {
		return h.noSessionFound(c)
	}

	user, err := h.usecase.GetUserBySession(c.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, usecase.ErrUserNotFound) && !errors.Is(err, usecase.ErrSessionNotFound) {
			h.log.Errorf("user lookup by session failed: %v", err)
		}
		return h.noSessionFound(c)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status: "succes",
		Data:   Data{Post: Post{User: user}},
	})
}

// LogUserOut deletes the session referenced by the cookie and clears the
// cookie. An absent or expired session yields the same 404 as no cookie.
func (h *LoginHTTPHandler) LogUserOut(c *fiber.Ctx) error {
	sessionID := c.Cookies(h.cookieName)

	session, err := h.usecase.GetSession(c.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, usecase.ErrSessionNotFound) {
			h.log.Errorf("session lookup failed: %v", err)
		}
		return h.noSessionFound(c)
	}
	if session.IsExpired() {
		return h.noSessionFound(c)
	}

	if _, err := h.usecase.DeleteSession(c.Context(), sessionID); err != nil {
		h.log.Errorf("session delete failed: %v", err)
		return h.noSessionFound(c)
	}

	h.clearCookie(c)

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status: "succes",
		Data:   Data{Post: Post{Message: "Deleted session successfully!"}},
	})
}

// ValidateUserInput is the pre-check gate in front of the login handler.
// The format rules are only enforced when an account exists for the
// submitted email; an unknown address falls through to the login handler
// and its generic rejection.
func (h *LoginHTTPHandler) ValidateUserInput(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.usecase.GetLogin(c.Context(), req.Email)
	if err != nil || user == nil {
		if err != nil && !errors.Is(err, usecase.ErrUserNotFound) {
			h.log.Errorf("credential lookup failed: %v", err)
		}
		return c.Next()
	}

	if !model.ValidPassword(req.Password) || !model.ValidEmail(req.Email) {
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Status: "error",
			Data:   Data{Post: Post{Message: "Wrong email format or password does not meet requirements!"}},
		})
	}

	return c.Next()
}

// Helper methods

func (h *LoginHTTPHandler) wrongCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(Envelope{
		Status: "fail",
		Data:   Data{Post: Post{Message: "Wrong email or password!"}},
	})
}

func (h *LoginHTTPHandler) noSessionFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(Envelope{
		Status: "failed",
		Data:   Data{Post: Post{Message: "No session found!"}},
	})
}

func (h *LoginHTTPHandler) setCookie(c *fiber.Ctx, sessionID string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   int(model.SessionLifetime.Seconds()),
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(model.SessionLifetime),
	})
}

func (h *LoginHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
