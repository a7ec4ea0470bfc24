package domain

import "errors"

var (
	// ErrEmptyDocument is returned when no text could be extracted from an uploaded document
	ErrEmptyDocument = errors.New("could not extract text from resume")

	// ErrNoSkillsRecognized is returned when a requirement document yields zero vocabulary skills
	ErrNoSkillsRecognized = errors.New("no technical skills recognized in input")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnsupportedFileType is returned for uploads that are not txt, pdf or docx
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrJobSourceFailure is returned when the remote job source cannot be read
	ErrJobSourceFailure = errors.New("job source request failed")

	// ErrNoJobsFound is returned when a job source yields no postings
	ErrNoJobsFound = errors.New("no jobs found")
)
