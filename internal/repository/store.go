package repository

import (
	"context"

	"github.com/quizforge/quizforge-go/internal/model"
)

// UserStore is the user directory.  The in-memory implementation is the
// default; a MySQL-backed one can be selected at startup.  Lookups return
// (nil, nil) on a miss so callers can distinguish absence from failure;
// FindByIDOrFail is for the paths where absence is a contract violation.
type UserStore interface {
	// Create hashes the password and inserts a new user.  Duplicate email
	// reports ErrEmailExists, duplicate username ErrUsernameExists; the
	// email check runs first.  Matching is exact, case-sensitive.
	Create(ctx context.Context, email, username, password, role string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	// FindByIDOrFail returns ErrUserNotFound on a miss.
	FindByIDOrFail(ctx context.Context, id uint64) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	// Touch bumps the user's updated timestamp, e.g. on successful login.
	Touch(ctx context.Context, id uint64) error
}

// QuizStore holds quizzes with their nested questions and answers.  Quiz,
// question and answer ids come from store-scoped monotonic counters and are
// never reused, even after deletion.
type QuizStore interface {
	// Create assigns fresh ids to the quiz and all nested content.  The
	// published flag defaults to false when the input leaves it nil.
	// authorID zero records the quiz as unattributed.
	Create(ctx context.Context, in model.CreateQuizInput, authorID uint64) (*model.Quiz, error)
	// FindAll, FindPublished and FindByAuthor are pure filters over the
	// collection in insertion order.
	FindAll(ctx context.Context) ([]*model.Quiz, error)
	FindPublished(ctx context.Context) ([]*model.Quiz, error)
	FindByAuthor(ctx context.Context, authorID uint64) ([]*model.Quiz, error)
	// FindOne returns *QuizNotFoundError when the id is absent.
	FindOne(ctx context.Context, id uint64) (*model.Quiz, error)
	// FindOneForPlay returns the quiz with every correctness flag stripped.
	FindOneForPlay(ctx context.Context, id uint64) (*model.PlayQuiz, error)
	// IsOwner reports whether the quiz's author id equals userID.  It is an
	// authorization check for the handler layer, not a domain invariant.
	IsOwner(ctx context.Context, quizID, userID uint64) (bool, error)
	// Update applies a partial patch; nil fields keep their current value.
	// Supplied questions and answers keep their existing non-zero ids and
	// draw new ones from the shared counters otherwise.
	Update(ctx context.Context, id uint64, in model.UpdateQuizInput) (*model.Quiz, error)
	Remove(ctx context.Context, id uint64) error
}
