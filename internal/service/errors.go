package service

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalid wraps every validation failure so handlers can map the
	// whole class to a 400 without inspecting messages.
	ErrInvalid = errors.New("invalid request")

	// ErrItemSold marks mutation attempts against a sold item.
	ErrItemSold = errors.New("item is sold")

	// ErrAlreadySold marks a repeated mark-sold call.
	ErrAlreadySold = errors.New("item already sold")

	// ErrAlreadyPublished marks a repeated publish call. Publishing is a
	// one-shot transition; published_at is stamped exactly once.
	ErrAlreadyPublished = errors.New("ad already published")
)
