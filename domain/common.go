package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUserID      = errors.New("failed to parse user id")
	ErrMalformedBody    = errors.New("malformed request body")
	ErrTokenNotFound    = errors.New("failed to token not found")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrStoreUnavailable = errors.New("store unavailable, please try again later")
)
