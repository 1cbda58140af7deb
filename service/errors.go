package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
)

// Kind classifies service failures.
type Kind int

const (
	Internal Kind = iota
	UnknownCity
	DuplicateCity
	NetworkFailure
	UpstreamFormatError
	RateLimited
	Timeout
	Cancelled
	InvalidReference
)

var kindNames = map[Kind]string{
	Internal:            "internal error",
	UnknownCity:         "unknown city",
	DuplicateCity:       "duplicate city",
	NetworkFailure:      "network failure",
	UpstreamFormatError: "malformed upstream response",
	RateLimited:         "rate limited",
	Timeout:             "timed out",
	Cancelled:           "cancelled",
	InvalidReference:    "invalid address reference",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Internal]
}

// Error is a failure attributed to the city it happened in.
type Error struct {
	City schedule.City
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	detail := e.Kind.String()
	if e.Err != nil {
		if msg := e.Err.Error(); strings.HasPrefix(msg, detail) {
			detail = msg
		} else {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
	}
	return fmt.Sprintf("%s: %s", e.City, detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, Internal for errors not produced by the service.
func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Cancelled
	case errors.Is(err, provider.ErrUnknownCity):
		return UnknownCity
	case errors.Is(err, provider.ErrDuplicateCity):
		return DuplicateCity
	case errors.Is(err, provider.ErrRateLimited):
		return RateLimited
	case errors.Is(err, provider.ErrNetwork):
		return NetworkFailure
	case errors.Is(err, provider.ErrUpstreamFormat):
		return UpstreamFormatError
	case errors.Is(err, provider.ErrInvalidReference):
		return InvalidReference
	default:
		return Internal
	}
}

func wrap(city schedule.City, err error) error {
	if err == nil {
		return nil
	}

	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	return &Error{City: city, Kind: classify(err), Err: err}
}
