package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNameRequired          = errors.New("name is required")
	ErrInvalidDateRange      = errors.New("end date must be after start date")
	ErrInvalidRole           = errors.New("invalid user role")
	ErrMatchTeamsIdentical   = errors.New("a match needs two distinct teams")
	ErrResultAlreadyRecorded = errors.New("match result has already been recorded")
	ErrSessionNotStarted     = errors.New("session has not been started")
	ErrSessionAlreadyEnded   = errors.New("session has already ended")
	ErrRegistrationApproved  = errors.New("registration is already approved")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already taken in this tournament")
	ErrTournamentConflict   = errors.New("tournament name already exists")
	ErrRegistrationConflict = errors.New("child is already registered for this tournament")
	ErrAttendanceConflict   = errors.New("attendance already marked for this child and session")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound         = errors.New("user not found")
	ErrCoachNotFound        = errors.New("coach not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrProfileNotFound      = errors.New("child profile not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrRegistrationNotFound = errors.New("player registration not found")
)
