package templates

import "github.com/JeonHyeonsu/gaongill/internal/models"

// FormData echoes the submitted registration/login fields back into the
// re-rendered form so the user does not retype them. Passwords are never
// echoed.
type FormData struct {
	Name  string
	Email string
	Phone string
	Job   string
}

// FormPageProps contains properties for the signup and signin pages
type FormPageProps struct {
	User    *models.User
	Error   bool
	Message string
	Data    FormData
}

// HomePageProps contains properties for the home page
type HomePageProps struct {
	User *models.User
}

// ProfilePageProps contains properties for the account details page
type ProfilePageProps struct {
	User *models.User
}

// ErrorPageProps contains properties for the error page
type ErrorPageProps struct {
	Error   string
	Message string
}
