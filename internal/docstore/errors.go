package docstore

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUnavailable  = errors.New("database not available")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidID    = errors.New("invalid id")
)

// detailLimit caps how much of a backend message reaches clients.
const detailLimit = 50

// Error is a backend failure tagged with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with op. Sentinel errors of this package pass through
// untouched so callers can still match them.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrInvalidID) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// Detail renders err for external display, truncated to a short prefix of
// the backend message.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}
	msg := err.Error()
	var storeErr *Error
	if errors.As(err, &storeErr) {
		msg = storeErr.Err.Error()
	}
	return Truncate(msg, detailLimit)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Offline stands in for a backend that could not be reached at startup.
// Every operation fails with ErrUnavailable.
type Offline struct {
	Reason error
}

func (o *Offline) Insert(context.Context, string, any) (string, error) {
	return "", ErrUnavailable
}

func (o *Offline) FindOne(context.Context, string, Filter, any) (bool, error) {
	return false, ErrUnavailable
}

func (o *Offline) FindMany(context.Context, string, Filter, any) error {
	return ErrUnavailable
}

func (o *Offline) UpdateOne(context.Context, string, Filter, Update) (int64, error) {
	return 0, ErrUnavailable
}

func (o *Offline) EnsureUnique(context.Context, string, string) error {
	return ErrUnavailable
}

func (o *Offline) Collections(context.Context) ([]string, error) {
	return nil, ErrUnavailable
}

func (o *Offline) Ping(context.Context) error {
	return ErrUnavailable
}

func (o *Offline) Name() string {
	return ""
}

func (o *Offline) Close(context.Context) error {
	return nil
}
