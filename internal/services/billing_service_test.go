package services

import (
	"testing"
	"time"

	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutUpgradesToPro(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db, testConfig())
	user := createTestUser(t, db, "checkout@example.com", string(plan.Free))

	start := time.Now()
	resp, err := svc.Checkout(user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(plan.Pro), resp.Plan)
	// The simulated processing delay actually elapses.
	assert.GreaterOrEqual(t, time.Since(start), testConfig().CheckoutDelay)
}

func TestSetPlanValidation(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db, testConfig())
	user := createTestUser(t, db, "plans@example.com", string(plan.Pro))

	resp, err := svc.SetPlan(user.ID, plan.Free)
	require.NoError(t, err)
	assert.Equal(t, string(plan.Free), resp.Plan)

	_, err = svc.SetPlan(user.ID, plan.Plan("TRIAL"))
	assert.Error(t, err)

	_, err = svc.SetPlan(uuid.New(), plan.Pro)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDirectoryListsAllTenants(t *testing.T) {
	db := testDB(t)
	leadSvc := NewLeadService(db)
	directory := NewDirectoryService(db)

	a := createTestUser(t, db, "dir-a@example.com", string(plan.Free))
	createTestUser(t, db, "dir-b@example.com", string(plan.Pro))

	_, err := leadSvc.Create(a.ID, newLeadRequest("A's lead"))
	require.NoError(t, err)

	tenants, err := directory.ListTenants()
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	byEmail := make(map[string]int64, len(tenants))
	for _, tn := range tenants {
		byEmail[tn.Email] = tn.LeadCount
	}
	assert.EqualValues(t, 1, byEmail["dir-a@example.com"])
	assert.EqualValues(t, 0, byEmail["dir-b@example.com"])
}
