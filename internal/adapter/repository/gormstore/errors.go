package gormstore

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"lab-inventory/internal/domain/apperr"
)

// MySQL: 1205 lock wait timeout, 1213 deadlock.
// Postgres: 55P03 lock_not_available, 40P01 deadlock, 40001 serialization.
func isContention(err error) bool {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1205 || me.Number == 1213
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case "55P03", "40P01", "40001":
			return true
		}
		return false
	}
	return strings.Contains(err.Error(), "database is locked")
}

// classify maps store errors onto the domain taxonomy. notFound and dup are
// optional replacements for missing rows and unique violations.
func classify(err error, notFound, dup error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case dup != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return dup
	case errors.Is(err, apperr.ErrContention):
		return err
	case isContention(err):
		return apperr.Contention(err)
	}
	return err
}
