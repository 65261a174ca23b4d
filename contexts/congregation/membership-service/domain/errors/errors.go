package errors

import "errors"

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidMemberInput = errors.New("first name, last name, gender, and date of birth are required")
	ErrInvalidGender      = errors.New("gender must be male, female, or other")
	ErrInvalidDateOfBirth = errors.New("date of birth must use the YYYY-MM-DD format")
	ErrInvalidSource      = errors.New("source must be Mobile or Web")
	ErrInvalidCSVHeader   = errors.New("csv header is invalid; expected first_name, last_name, gender, dob, address, phone_number")
)
