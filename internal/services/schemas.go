package services

import (
	"regexp"

	"github.com/JeonHyeonsu/gaongill/internal/validate"
)

// JobNotSelected is the placeholder value of the job select box
const JobNotSelected = "notselect"

var (
	// The dot before the TLD is deliberately left unescaped; the signup form
	// has always accepted addresses like "a@b_kr" and tightening it would
	// reject emails that existing accounts registered with.
	emailPattern = regexp.MustCompile(
		`^[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*@[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*.[a-zA-Z]{2,3}$`,
	)
	phonePattern = regexp.MustCompile(`^\d{2,3}-\d{3,4}-\d{4}$`)
)

// signupSchema validates the registration form. Password strength is not
// checked here; only presence.
var signupSchema = validate.Schema{
	{
		Name:            "name",
		Required:        true,
		MinLen:          1,
		MaxLen:          12,
		RequiredMessage: "Please enter your name.",
	},
	{
		Name:            "email",
		Required:        true,
		Pattern:         emailPattern,
		RequiredMessage: "Please enter your email address.",
		PatternMessage:  "Please enter a valid email address.",
	},
	{
		Name:            "phone",
		Required:        true,
		Pattern:         phonePattern,
		RequiredMessage: "Please enter your phone number.",
		PatternMessage:  "Phone number must match the format xxx-xxxx-xxxx.",
	},
	{
		Name:            "job",
		Required:        true,
		Disallow:        JobNotSelected,
		RequiredMessage: "Please select your job.",
	},
	{
		Name:            "password",
		Required:        true,
		RequiredMessage: "Please enter your password.",
	},
	{
		Name:            "password-repeat",
		Required:        true,
		RequiredMessage: "Please enter your password again.",
	},
}

// signinSchema validates the login form
var signinSchema = validate.Schema{
	{
		Name:            "email",
		Required:        true,
		Pattern:         emailPattern,
		RequiredMessage: "Please enter your email address.",
		PatternMessage:  "Please enter a valid email address.",
	},
	{
		Name:            "password",
		Required:        true,
		RequiredMessage: "Please enter your password.",
	},
}
