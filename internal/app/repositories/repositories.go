package repositories

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/dberrors"
)

// Repositories holds all repository instances
type Repositories struct {
	Users       *UserRepository
	Students    *StudentRepository
	Catalog     *CatalogRepository
	Enrollments *EnrollmentRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(pool),
		Students:    NewStudentRepository(pool),
		Catalog:     NewCatalogRepository(pool),
		Enrollments: NewEnrollmentRepository(pool),
	}
}

// storeErr classifies a low-level database error: transient connectivity
// failures become ErrStoreUnavailable so callers can distinguish retryable
// outages from permanent failures.
func storeErr(err error, op string) error {
	if dberrors.IsTransient(err) {
		return apperrors.NewCustomError(apperrors.ErrStoreUnavailable, fmt.Sprintf("%s: store unavailable", op))
	}
	return fmt.Errorf("%s: %w", op, err)
}
