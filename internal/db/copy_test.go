package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "lead_archive", []string{"company_name", "role"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"lead_archive"}, []string{"company_name", "role"}).WillReturnResult(3)

	rows := [][]any{{"Nexara Labs", "AI Engineer"}, {"Quantrail", "ML Engineer"}, {"BrightHive", "Backend Engineer"}}
	n, err := CopyFrom(context.Background(), mock, "lead_archive", []string{"company_name", "role"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"lead_archive"}, []string{"company_name"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"Nexara Labs"}}
	_, err = CopyFrom(context.Background(), mock, "lead_archive", []string{"company_name"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO lead_archive")
	assert.NoError(t, mock.ExpectationsWereMet())
}
