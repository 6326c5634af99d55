package service

import (
	"regexp"
	"strings"
)

var (
	reLower = regexp.MustCompile(`[a-z]`)
	reUpper = regexp.MustCompile(`[A-Z]`)
	reDigit = regexp.MustCompile(`[0-9]`)
	rePunct = regexp.MustCompile(`[[:punct:]]`)
)

// passwordProblems checks the password complexity policy: at least one
// lowercase letter, one uppercase letter, one digit and one punctuation
// character, and the confirmation must match.
func passwordProblems(password, confirmation string) []string {
	var problems []string
	if password != confirmation {
		problems = append(problems, "password and confirmation do not match")
	}
	if !reLower.MatchString(password) {
		problems = append(problems, "password must contain a lowercase letter")
	}
	if !reUpper.MatchString(password) {
		problems = append(problems, "password must contain an uppercase letter")
	}
	if !reDigit.MatchString(password) {
		problems = append(problems, "password must contain a digit")
	}
	if !rePunct.MatchString(password) {
		problems = append(problems, "password must contain a punctuation character")
	}
	return problems
}

// validUsername rejects usernames that could collide with the email
// namespace: lookups accept either identifier and tell them apart by '@'.
func validUsername(username string) bool {
	return username != "" && !strings.Contains(username, "@")
}

func validEmail(email string) bool {
	return strings.Contains(email, "@")
}

func validPhone(phone string) bool {
	return strings.Contains(phone, "+")
}

// isEmailIdentifier tells whether an account identifier names an email or a
// username.
func isEmailIdentifier(id string) bool {
	return strings.Contains(id, "@")
}
