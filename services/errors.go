package services

import "errors"

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrMemeNotFound        = errors.New("meme not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnsupportedDecision = errors.New("unsupported swipe decision")
)
