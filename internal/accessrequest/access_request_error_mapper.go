package accessrequest

import (
	"errors"
	"strings"

	accessrequesterrors "go-hradmin/internal/accessrequest/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return accessrequesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_access_requests_active_email" {
			return accessrequesterrors.ErrDuplicateActiveRequest
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_access_requests_active_email") {
		return accessrequesterrors.ErrDuplicateActiveRequest
	}

	return err
}
