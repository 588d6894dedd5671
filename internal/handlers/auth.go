package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/JeonHyeonsu/gaongill/internal/metrics"
	"github.com/JeonHyeonsu/gaongill/internal/middleware"
	"github.com/JeonHyeonsu/gaongill/internal/models"
	"github.com/JeonHyeonsu/gaongill/internal/services"
	"github.com/JeonHyeonsu/gaongill/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Generic caller-facing messages. Store and session internals are logged,
// never rendered.
const (
	genericErrorMessage = "Something went wrong. Please try again."
	sessionErrorMessage = "Failed to create session. Please try again."
)

type AuthHandler struct {
	userService *services.UserService
	metrics     metrics.Recorder
}

func NewAuthHandler(us *services.UserService, m metrics.Recorder) *AuthHandler {
	return &AuthHandler{
		userService: us,
		metrics:     m,
	}
}

// SignupPage renders the registration form
func (h *AuthHandler) SignupPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(middleware.SessionUserID) != nil {
		// Already logged in
		c.Redirect(http.StatusFound, "/")
		return
	}

	templates.Render(c, http.StatusOK, "signup.html", templates.FormPageProps{})
}

// Signup handles the registration form submission
func (h *AuthHandler) Signup(c *gin.Context) {
	input := services.RegisterInput{
		Name:           c.PostForm("name"),
		Email:          c.PostForm("email"),
		Phone:          c.PostForm("phone"),
		Job:            c.PostForm("job"),
		Password:       c.PostForm("password"),
		PasswordRepeat: c.PostForm("password-repeat"),
	}

	user, err := h.userService.Register(c.Request.Context(), input)
	if err != nil {
		h.metrics.RecordSignup(false)
		templates.Render(c, http.StatusBadRequest, "signup.html", templates.FormPageProps{
			Error:   true,
			Message: registrationMessage(err),
			Data:    echoData(input),
		})
		return
	}

	// Establish the session; success is signaled only after the session
	// store acknowledged the write.
	if err := h.login(c, user); err != nil {
		log.Printf("[Auth] Failed to save session for email=%s: %v", user.Email, err)
		h.metrics.RecordSignup(false)
		templates.Render(c, http.StatusBadRequest, "signup.html", templates.FormPageProps{
			Error:   true,
			Message: sessionErrorMessage,
			Data:    echoData(input),
		})
		return
	}

	h.metrics.RecordSignup(true)
	h.metrics.RecordLogin(models.ProviderLocal, true)
	c.Redirect(http.StatusFound, "/")
}

// SigninPage renders the login form
func (h *AuthHandler) SigninPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(middleware.SessionUserID) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	templates.Render(c, http.StatusOK, "signin.html", templates.FormPageProps{})
}

// Signin handles the login form submission
func (h *AuthHandler) Signin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.userService.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		h.metrics.RecordLogin(models.ProviderLocal, false)
		templates.Render(c, http.StatusBadRequest, "signin.html", templates.FormPageProps{
			Error:   true,
			Message: authenticationMessage(err),
			Data:    templates.FormData{Email: email},
		})
		return
	}

	if err := h.login(c, user); err != nil {
		log.Printf("[Auth] Failed to save session for email=%s: %v", email, err)
		h.metrics.RecordLogin(models.ProviderLocal, false)
		templates.Render(c, http.StatusBadRequest, "signin.html", templates.FormPageProps{
			Error:   true,
			Message: sessionErrorMessage,
			Data:    templates.FormData{Email: email},
		})
		return
	}

	h.metrics.RecordLogin(models.ProviderLocal, true)
	c.Redirect(http.StatusFound, "/")
}

// Signout invalidates the session and redirects home. Completion is
// signaled only after the session store acknowledged the change.
func (h *AuthHandler) Signout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[Auth] Failed to clear session: %v", err)
		templates.RenderError(c, http.StatusInternalServerError, sessionErrorMessage)
		return
	}
	h.metrics.RecordLogout()
	c.Redirect(http.StatusFound, "/")
}

// Home renders the landing page, with the signed-in user when present
func (h *AuthHandler) Home(c *gin.Context) {
	var user *models.User
	session := sessions.Default(c)
	if userID, ok := session.Get(middleware.SessionUserID).(string); ok {
		u, err := h.userService.GetUserByID(userID)
		if err == nil {
			user = u
		}
	}
	templates.Render(c, http.StatusOK, "home.html", templates.HomePageProps{User: user})
}

// Profile renders the signed-in user's account details. RequireAuth has
// already put the user ID into the request context.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, _ := c.Get(middleware.SessionUserID)
	id, ok := userID.(string)
	if !ok {
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		// The session references a row that no longer exists
		session := sessions.Default(c)
		session.Clear()
		if err := session.Save(); err != nil {
			log.Printf("[Auth] Failed to clear stale session: %v", err)
		}
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	templates.Render(c, http.StatusOK, "profile.html", templates.ProfilePageProps{User: user})
}

// login binds the authenticated user to the session
func (h *AuthHandler) login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionUsername, user.DisplayName)
	return session.Save()
}

func echoData(in services.RegisterInput) templates.FormData {
	return templates.FormData{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Job:   in.Job,
	}
}

// registrationMessage maps registration workflow errors to the single
// message shown above the re-rendered form
func registrationMessage(err error) string {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, services.ErrPasswordMismatch):
		return "The two passwords do not match."
	case errors.Is(err, services.ErrDuplicateAccount):
		return "This email address is already registered."
	default:
		return genericErrorMessage
	}
}

// authenticationMessage maps login workflow errors to the single message
// shown above the re-rendered form
func authenticationMessage(err error) string {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Not a registered account, or the password is wrong."
	default:
		return genericErrorMessage
	}
}
