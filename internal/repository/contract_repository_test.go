package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

func contractRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "child_id", "primary_tutor_id", "mode", "center_id", "status",
		"days", "start_minute", "end_minute", "effective_from", "effective_until",
		"created_at", "updated_at",
	}).AddRow("contract-1", "child-1", "tutor-1", "online", nil, "active", 2, 570, 630, now, nil, now, now)
}

func TestContractRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM contracts WHERE id = \\$1").
		WithArgs("contract-1").
		WillReturnRows(contractRows())

	contract, err := repo.FindByID(context.Background(), "contract-1")
	require.NoError(t, err)
	assert.Equal(t, models.ContractModeOnline, contract.Mode)
	assert.Equal(t, models.DayMonday, contract.Days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryListActiveByTutor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM contracts WHERE primary_tutor_id = \\$1 AND status = \\$2").
		WithArgs("tutor-1", models.ContractStatusActive).
		WillReturnRows(contractRows())

	contracts, err := repo.ListActiveByTutor(context.Background(), "tutor-1")
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryCountActiveByTutor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contracts WHERE primary_tutor_id = \\$1 AND status = \\$2").
		WithArgs("tutor-1", models.ContractStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveByTutor(context.Background(), "tutor-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
