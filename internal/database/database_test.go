package database

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct{ uri, want string }{
		{"mongodb://localhost:27017/ewaste", "ewaste"},
		{"mongodb://localhost:27017", DefaultDatabase},
		{"mongodb://localhost:27017/", DefaultDatabase},
		{"mongodb+srv://u:p@cluster0.abc.mongodb.net/prod?retryWrites=1", "prod"},
		{"mongodb://u:p@h1:27017,h2:27017/reg?replicaSet=rs0", "reg"},
		{"mongodb://h1:27017/?tls=true", DefaultDatabase},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, databaseName(tt.uri), tt.uri)
	}
}

func TestIndexPlan(t *testing.T) {
	plan := IndexPlan()

	require.Len(t, plan[UsersCollection], 2)
	require.Len(t, plan[AdminsCollection], 1)
	require.Len(t, plan[CollectionPointsCollection], 2)

	unique := plan[UsersCollection][0].Options.Unique
	require.NotNil(t, unique)
	assert.True(t, *unique)
}

func TestInitPostgresTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, q := range PostgresSchema {
		mock.ExpectExec(regexp.QuoteMeta(q)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, InitPostgresTables(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitPostgresTables_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(PostgresSchema[0])).WillReturnError(errors.New("permission denied"))

	assert.Error(t, InitPostgresTables(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
