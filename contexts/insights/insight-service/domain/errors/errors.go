package errors

import "errors"

var (
	ErrInvalidReportType     = errors.New("invalid report type selected")
	ErrInvalidPredictionType = errors.New("invalid prediction type selected")
	ErrGeneratorUnavailable  = errors.New("text generator is unavailable")
)
