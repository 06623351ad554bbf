package company

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"giglog/internal/database"
	"giglog/internal/domain"
	"giglog/internal/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &domain.User{FirstName: "T", LastName: "U", Email: "owner@example.com", HashedPassword: "x"}
	require.NoError(t, db.Create(user).Error)

	return NewService(repository.NewCompanyRepository(db)), db, user.ID
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateAndGetCompany(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, CompanyRequest{
		Name:                    "  Night Owl Staffing  ",
		RequiresTaxWithholdings: true,
		TaxWithholdingRate:      decimalPtr("15.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Night Owl Staffing", created.Name)

	detail, err := svc.Get(ctx, userID, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Company.ID)
	assert.True(t, detail.TotalPaid.IsZero())
	assert.Zero(t, detail.TotalWorkedSeconds)
	assert.Empty(t, detail.RecentJobs)
}

func TestCompanyValidation(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, CompanyRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, userID, CompanyRequest{
		Name:                    "No Rate",
		RequiresTaxWithholdings: true,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, userID, CompanyRequest{
		Name:                    "Bad Rate",
		RequiresTaxWithholdings: true,
		TaxWithholdingRate:      decimalPtr("101"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, userID, CompanyRequest{
		Name:               "Stray Rate",
		TaxWithholdingRate: decimalPtr("10"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompanyScopedToOwner(t *testing.T) {
	svc, db, userID := newTestService(t)
	ctx := context.Background()

	other := &domain.User{FirstName: "O", LastName: "U", Email: "other@example.com", HashedPassword: "x"}
	require.NoError(t, db.Create(other).Error)

	created, err := svc.Create(ctx, userID, CompanyRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other.ID, created.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Still there for the owner.
	_, err = svc.Get(ctx, userID, created.ID, 1)
	require.NoError(t, err)
}

func TestCompanyAggregates(t *testing.T) {
	svc, db, userID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, CompanyRequest{Name: "Aggregates Inc"})
	require.NoError(t, err)

	rate := decimal.RequireFromString("25")
	job := &domain.Job{
		UserID:      userID,
		CompanyID:   created.ID,
		Title:       "Bartending",
		PaymentType: domain.JobPaymentHourly,
		HourlyRate:  &rate,
	}
	require.NoError(t, db.Create(job).Error)

	for _, total := range []string{"100.50", "49.50"} {
		require.NoError(t, db.Create(&domain.Payment{
			UserID:          userID,
			CompanyID:       created.ID,
			Total:           decimal.RequireFromString(total),
			PayoutType:      domain.PayoutCash,
			PaymentReceived: true,
		}).Error)
	}

	start := time.Now().Add(-2 * time.Hour)
	end := start.Add(90 * time.Minute)
	require.NoError(t, db.Create(&domain.WorkSession{
		UserID:                    userID,
		JobID:                     job.ID,
		StartTime:                 &start,
		EndTime:                   &end,
		AccumulatedPausedDuration: 600,
	}).Error)

	detail, err := svc.Get(ctx, userID, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, detail.TotalPaid.Equal(decimal.RequireFromString("150")))
	assert.Equal(t, int64(90*60-600), detail.TotalWorkedSeconds)
	assert.Len(t, detail.RecentJobs, 1)
	assert.Len(t, detail.RecentPayments, 2)
}

func TestUpdateCompany(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, CompanyRequest{Name: "Before"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, created.ID, CompanyRequest{
		Name:                    "After",
		RequiresTaxWithholdings: true,
		TaxWithholdingRate:      decimalPtr("30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.True(t, updated.RequiresTaxWithholdings)

	_, err = svc.Update(ctx, userID, uuid.New(), CompanyRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}
