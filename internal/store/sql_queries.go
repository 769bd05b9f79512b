package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-image-keeper/models"
)

var (
	userTable    = models.User{}.TableName()
	sessionTable = models.Session{}.TableName()

	userColumns    = []string{"id", "username", "password", "created_at"}
	sessionColumns = []string{"id", "user_id", "created_at", "expires_at"}
)

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(userTable).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
}

func buildFindUserByIDQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(userColumns...).
		From(userTable).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(userTable).
		Columns("username", "password").
		Values(user.Username, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildUpdatePasswordQuery(b sq.StatementBuilderType, username, passwordHash string) (string, []any, error) {
	return b.Update(userTable).
		Set("password", passwordHash).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildCreateSessionQuery(b sq.StatementBuilderType, session models.Session) (string, []any, error) {
	return b.Insert(sessionTable).
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, session.CreatedAt, session.ExpiresAt).
		ToSql()
}

func buildFindSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(sessionTable).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Delete(sessionTable).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(sessionTable).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}
