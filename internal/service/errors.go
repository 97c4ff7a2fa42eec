package service

import "errors"

// Sentinel errors for the attempt engine. Controllers map these to
// HTTP statuses with errors.Is; everything else is a server error.
var (
	// ErrNotFound covers attempts (or questions) that do not exist or
	// do not belong to the caller.
	ErrNotFound = errors.New("attempt not found")

	// ErrAlreadySubmitted is returned for writes against a COMPLETED
	// attempt.
	ErrAlreadySubmitted = errors.New("assessment already submitted")

	// ErrAttemptInProgress rejects starting a new attempt while one is
	// still live.
	ErrAttemptInProgress = errors.New("an assessment is already in progress")

	// ErrSessionExpired signals that the attempt ran past its total
	// allowed time and was auto-submitted server-side.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoQuestionsAvailable means composition produced an empty set.
	ErrNoQuestionsAvailable = errors.New("no approved aptitude questions available")

	// ErrResumeQuestionsUnavailable means resume-derived questions were
	// required but none could be generated; callers may suggest
	// re-running resume analysis.
	ErrResumeQuestionsUnavailable = errors.New("no resume skills detected; run resume analysis or upload a detailed resume")

	// ErrNoResumeAvailable means a mode that mandates resume-derived
	// questions was requested without an uploaded resume.
	ErrNoResumeAvailable = errors.New("no resume uploaded")

	// ErrValidation marks bad input shapes (count out of range, unknown
	// mode).
	ErrValidation = errors.New("invalid request")
)
