package errors

import "errors"

// Common application errors.
var (
	// ErrNotFound is returned when a record, exam, attendance row or file cannot be found.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when the request carries no valid session or token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the user's role does not allow the action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for unique-key conflicts (duplicate NIP, NISN, email, ...).
	ErrConflict = errors.New("resource state conflict")
)

// Exam subsystem errors.
var (
	// ErrDuplicateAttempt means the user already has an attendance row for the exam.
	ErrDuplicateAttempt = errors.New("exam already attempted")

	// ErrDecryptOrParse means an encrypted question/answer payload could not be
	// decrypted or decoded.
	ErrDecryptOrParse = errors.New("failed to decrypt or parse payload")

	// ErrFileMissing means a referenced question or answer file does not exist.
	ErrFileMissing = errors.New("file missing")

	// ErrGradingNotImplemented is returned by the placeholder grader. Answer-key
	// comparison has not been specified yet, so scores stay at zero.
	ErrGradingNotImplemented = errors.New("grading not implemented")
)
