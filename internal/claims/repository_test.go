package claims

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-advisor/internal/common/logger"
)

var claimColumns = []string{
	"claim_number", "destination", "claim_type", "cause_of_loss",
	"loss_type", "gross_incurred", "accident_date",
}

func TestClaimsByDestination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(claimColumns).
		AddRow("CLM-001", "Japan", "Medical", "Slip and fall", "Injury", 12000.0, "2024-02-10").
		AddRow("CLM-002", "Japan", "Baggage", "Theft", nil, 800.0, "2024-01-22")

	mock.ExpectQuery("SELECT").
		WithArgs("japan", 1000).
		WillReturnRows(rows)

	repo := NewRepository(db, 1000, logger.NewTestLogger(t))
	records, err := repo.ClaimsByDestination(context.Background(), "Tokyo")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CLM-001", records[0].ClaimNumber)
	assert.Equal(t, "Medical", records[0].ClaimType)
	assert.Equal(t, "Injury", records[0].LossType)
	assert.Equal(t, 12000.0, records[0].IncurredAmount)
	assert.Equal(t, "", records[1].LossType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimsByDestinationQueryFailureDegradesToEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("thailand", 1000).
		WillReturnError(errors.New("connection refused"))

	repo := NewRepository(db, 1000, logger.NewNoOpLogger())
	records, err := repo.ClaimsByDestination(context.Background(), "Bangkok")

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestClaimsByDestinationNilDatabase(t *testing.T) {
	repo := NewRepository(nil, 1000, logger.NewNoOpLogger())

	records, err := repo.ClaimsByDestination(context.Background(), "Japan")

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestClaimsByDestinationAppliesLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("japan", 25).
		WillReturnRows(sqlmock.NewRows(claimColumns))

	repo := NewRepository(db, 25, logger.NewNoOpLogger())
	_, err = repo.ClaimsByDestination(context.Background(), "Japan")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
