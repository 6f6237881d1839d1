package model

import "errors"

var (
	// ErrParticipantNotFound indicates that the requested participant does not exist.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidUsername indicates a username outside 3..64 allowed characters.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrWeakPassword indicates a password shorter than the minimum.
	ErrWeakPassword = errors.New("password too short")
	// ErrInvalidDisplayName indicates an empty or too long display name.
	ErrInvalidDisplayName = errors.New("invalid display name")
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrParticipantInactive indicates a deactivated participant trying to log in.
	ErrParticipantInactive = errors.New("participant is inactive")
	// ErrNoChanges indicates an update request without any field set.
	ErrNoChanges = errors.New("no fields to update")
)
