package attendance

import "errors"

// Attendance domain errors
var (
	// Sign-in errors
	ErrEmptyName       = errors.New("staff name must not be empty")
	ErrDuplicateSignIn = errors.New("you have already signed in today")

	// Sign-out errors
	ErrNoSignInFound       = errors.New("no sign-in record found for today")
	ErrAlreadySignedOut    = errors.New("you have already signed out today")
	ErrSignOutBeforeSignIn = errors.New("sign-out time precedes the sign-in time")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
