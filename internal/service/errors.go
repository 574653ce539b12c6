package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownPage        = errors.New("page does not exist")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrEmptyEmoji         = errors.New("emoji symbol is empty")
	ErrScheduleIncomplete = errors.New("both date and time are required to schedule")
	ErrInvalidSchedule    = errors.New("invalid schedule date or time")
	ErrScheduleInPast     = errors.New("scheduled time is in the past")
	ErrNoPages            = errors.New("select at least one page to post to")
	ErrNoContent          = errors.New("add text or media before posting")
)
