package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JeonHyeonsu/gaongill/internal/auth"
	"github.com/JeonHyeonsu/gaongill/internal/metrics"
	"github.com/JeonHyeonsu/gaongill/internal/middleware"
	"github.com/JeonHyeonsu/gaongill/internal/services"
	"github.com/JeonHyeonsu/gaongill/internal/store"
	"github.com/JeonHyeonsu/gaongill/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *services.UserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.New("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	userService := services.NewUserService(db, auth.NewLocalProvider(db), true)
	handler := NewAuthHandler(userService, metrics.NewNoopMetrics())

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	templates.Load(r)

	r.GET("/signup", handler.SignupPage)
	r.POST("/signup", handler.Signup)
	r.GET("/signin", handler.SigninPage)
	r.POST("/signin", handler.Signin)
	r.GET("/signout", handler.Signout)
	r.GET("/", handler.Home)
	r.GET("/profile", middleware.RequireAuth(), handler.Profile)

	return r, userService
}

func validSignupForm() url.Values {
	return url.Values{
		"name":            {"A"},
		"email":           {"a@example.com"},
		"phone":           {"010-1234-5678"},
		"job":             {"dev"},
		"password":        {"x"},
		"password-repeat": {"x"},
	}
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "test_session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestSignupPage(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := get(r, "/signup")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/signup"`)
}

func TestSignup(t *testing.T) {
	t.Run("valid form redirects home with a session", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signup", validSignupForm())
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		cookie := sessionCookie(t, w)
		assert.NotEmpty(t, cookie.Value)

		// The fresh session is accepted by signed-in-only routes
		w = get(r, "/profile", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("duplicate email re-renders the form with 400", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signup", validSignupForm())
		require.Equal(t, http.StatusFound, w.Code)

		w = postForm(r, "/signup", validSignupForm())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This email address is already registered.")
	})

	t.Run("validation failure echoes submitted data", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		form := validSignupForm()
		form.Set("phone", "bad")
		w := postForm(r, "/signup", form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Phone number must match the format xxx-xxxx-xxxx.")
		assert.Contains(t, body, `value="a@example.com"`)
		assert.Contains(t, body, `value="A"`)
		// Passwords are never echoed back
		assert.NotContains(t, body, `value="x"`)
	})

	t.Run("password mismatch re-renders with message", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		form := validSignupForm()
		form.Set("password-repeat", "y")
		w := postForm(r, "/signup", form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "The two passwords do not match.")
	})
}

func TestSignin(t *testing.T) {
	register := func(t *testing.T, r *gin.Engine) {
		t.Helper()
		w := postForm(r, "/signup", validSignupForm())
		require.Equal(t, http.StatusFound, w.Code)
	}

	t.Run("valid credentials redirect home with a session", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		register(t, r)

		w := postForm(r, "/signin", url.Values{
			"email":    {"a@example.com"},
			"password": {"x"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.NotEmpty(t, sessionCookie(t, w).Value)
	})

	t.Run("wrong password re-renders with 400 and echoed email", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		register(t, r)

		w := postForm(r, "/signin", url.Values{
			"email":    {"a@example.com"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Not a registered account, or the password is wrong.")
		assert.Contains(t, body, `value="a@example.com"`)
	})

	t.Run("unregistered account gets the same message", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signin", url.Values{
			"email":    {"nobody@example.com"},
			"password": {"x"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Not a registered account, or the password is wrong.")
	})

	t.Run("missing email reports the validation message", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signin", url.Values{"password": {"x"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter your email address.")
	})
}

func TestSignout(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := postForm(r, "/signup", validSignupForm())
	require.Equal(t, http.StatusFound, w.Code)
	cookie := sessionCookie(t, w)

	w = get(r, "/signout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The cleared session no longer passes the auth guard
	cleared := sessionCookie(t, w)
	w = get(r, "/profile", cleared)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))
}

func TestProfile(t *testing.T) {
	t.Run("anonymous request redirects to signin", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := get(r, "/profile")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin", w.Header().Get("Location"))
	})

	t.Run("signed-in user sees account details", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signup", validSignupForm())
		require.Equal(t, http.StatusFound, w.Code)
		cookie := sessionCookie(t, w)

		w = get(r, "/profile", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "a@example.com")
		assert.Contains(t, body, "010-1234-5678")
		assert.Contains(t, body, "local")
	})
}

func TestHome(t *testing.T) {
	t.Run("anonymous visitor sees the landing page", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := get(r, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/signin")
	})

	t.Run("signed-in visitor sees their display name", func(t *testing.T) {
		r, _ := setupTestRouter(t)

		w := postForm(r, "/signup", validSignupForm())
		require.Equal(t, http.StatusFound, w.Code)
		cookie := sessionCookie(t, w)

		w = get(r, "/", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Welcome, A.")
	})
}

func TestSignedInUserSkipsAuthForms(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := postForm(r, "/signup", validSignupForm())
	require.Equal(t, http.StatusFound, w.Code)
	cookie := sessionCookie(t, w)

	for _, path := range []string{"/signup", "/signin"} {
		w = get(r, path, cookie)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
}
