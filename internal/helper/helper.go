package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

func HasConsent(codes []string, need string) bool {
	need = strings.ToUpper(need)
	for _, c := range codes {
		if strings.ToUpper(strings.TrimSpace(c)) == need {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports a postgres unique violation, optionally on a
// specific constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
