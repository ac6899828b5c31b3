package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/burakserin/taskvault/internal/config"
)

// newMockedUserService backs a UserService with a sqlmock connection so the
// session lifecycle can be exercised without a running Postgres.
func newMockedUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserService(db, &config.Config{JWTSecret: string(testSecret)}), mock
}

func sessionRows(userID uuid.UUID, tokenHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "token_hash", "created_at"}).
		AddRow(uuid.New().String(), userID.String(), tokenHash, time.Now())
}

func emptySessionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "token_hash", "created_at"})
}

func userRows(userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "age", "avatar", "created_at", "updated_at"}).
		AddRow(userID.String(), "Grace", "grace@example.com", "$2a$08$notarealhash", 41, nil, time.Now(), time.Now())
}

func TestAuthenticateTokenActiveSession(t *testing.T) {
	svc, mock := newMockedUserService(t)

	userID := uuid.New()
	raw, err := signToken(userID, testSecret)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "session_tokens"`).
		WillReturnRows(sessionRows(userID, hashToken(raw)))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(userID))

	user, err := svc.AuthenticateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateTokenRejectedAfterLogout(t *testing.T) {
	svc, mock := newMockedUserService(t)

	userID := uuid.New()
	raw, err := signToken(userID, testSecret)
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM "session_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.Logout(userID, raw))

	// The signature still verifies, but the session row is gone.
	mock.ExpectQuery(`SELECT \* FROM "session_tokens"`).
		WillReturnRows(emptySessionRows())

	_, err = svc.AuthenticateToken(raw)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateTokenRejectedAfterLogoutAll(t *testing.T) {
	svc, mock := newMockedUserService(t)

	userID := uuid.New()
	raw, err := signToken(userID, testSecret)
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM "session_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, svc.LogoutAll(userID))

	mock.ExpectQuery(`SELECT \* FROM "session_tokens"`).
		WillReturnRows(emptySessionRows())
	_, err = svc.AuthenticateToken(raw)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateTokenForgedSignatureSkipsDatabase(t *testing.T) {
	svc, mock := newMockedUserService(t)

	forged, err := signToken(uuid.New(), []byte("some other secret"))
	require.NoError(t, err)

	_, err = svc.AuthenticateToken(forged)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// No expectations were registered: a bad signature must never hit storage.
	assert.NoError(t, mock.ExpectationsWereMet())
}
