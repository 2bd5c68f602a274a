// Package repository defines the storage interfaces and the error values
// shared by their implementations.  Sentinel errors let handlers translate
// storage failures into HTTP statuses without inspecting messages: the
// duplicate errors map to 409, the not-found errors to 404.
package repository

import (
	"errors"
	"fmt"
)

// ErrEmailExists is returned when registering with an email that is already
// taken.  Email uniqueness is checked before username uniqueness, so a
// request violating both reports the email conflict.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registering with a username that is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned by FindByIDOrFail when the id does not
// resolve.  The plain Find* lookups report a miss as (nil, nil) instead.
var ErrUserNotFound = errors.New("user not found")

// QuizNotFoundError reports a missing quiz.  It is a struct error rather
// than a sentinel because the message must name the requested id.
type QuizNotFoundError struct {
	ID uint64
}

func (e *QuizNotFoundError) Error() string {
	return fmt.Sprintf("quiz with id %d not found", e.ID)
}
