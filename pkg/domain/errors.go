package domain

import "errors"

// ErrEmptyRegistry is returned when a carousel is built without slides.
var ErrEmptyRegistry = errors.New("slide registry is empty")

// ErrClosed is returned when an intent reaches a carousel that has been unmounted.
var ErrClosed = errors.New("carousel closed")

// ErrSessionNotFound is returned when a session ID has no live carousel.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownIntent is returned when an intent kind cannot be parsed.
var ErrUnknownIntent = errors.New("unknown intent")

// ErrUnknownLanguage is returned when no catalog exists for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// ErrSessionLimit is returned when no more carousels may be mounted.
var ErrSessionLimit = errors.New("too many sessions")
