package handler

import (
	"errors"
	"time"

	"skill-passport/internal/delivery/http/dto"
	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase/access"
	ucauth "skill-passport/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

// CookieConfig controls the session cookie written on register and login.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	uc      ucauth.AuthUsecase
	session *middleware.SessionMiddleware
	cookie  CookieConfig
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Program    string `json:"program"`
	Department string `json:"department"`
	Company    string `json:"company"`
	GitHub     string `json:"github"`
	LinkedIn   string `json:"linkedin"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc ucauth.AuthUsecase, session *middleware.SessionMiddleware, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = session.CookieName()
	}
	return &AuthHandler{uc: uc, session: session, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, sess, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Program:    req.Program,
		Department: req.Department,
		Company:    req.Company,
		GitHub:     req.GitHub,
		LinkedIn:   req.LinkedIn,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSessionCookie(c, sess)
	return response.OK(c, fiber.Map{"user": dto.NewUserResponse(usr)})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, sess, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSessionCookie(c, sess)
	return response.OK(c, fiber.Map{"user": dto.NewUserResponse(usr)})
}

// Logout always clears the cookie. A token that is already invalid has
// nothing left to revoke.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if tok := h.session.Token(c); tok != "" {
		if err := h.uc.Logout(c.Context(), tok); err != nil {
			return mapAuthUsecaseError(err)
		}
	}
	h.clearSessionCookie(c)
	return response.OK(c, nil)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	usr, err := h.uc.Me(c.Context(), h.session.Token(c))
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"user": dto.NewUserResponse(usr)})
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, sess access.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrDuplicateEmail):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrLinkedInRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "LinkedIn profile is required for lecturers", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing required fields", nil, err)
	case errors.Is(err, access.ErrUnauthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
