package services

import (
	"math"
	"testing"
	"time"

	"divvy/internal/models"
	"divvy/internal/testutil"
)

func assertSummary(t *testing.T, got *DashboardSummary, owed, owing float64) {
	t.Helper()
	if math.Abs(got.TotalOwed-owed) > 0.01 {
		t.Errorf("expected total_owed %.2f, got %.2f", owed, got.TotalOwed)
	}
	if math.Abs(got.TotalOwing-owing) > 0.01 {
		t.Errorf("expected total_owing %.2f, got %.2f", owing, got.TotalOwing)
	}
	if math.Abs(got.NetBalance-(owed-owing)) > 0.01 {
		t.Errorf("expected net_balance %.2f, got %.2f", owed-owing, got.NetBalance)
	}
}

func TestGetDashboard(t *testing.T) {
	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, summary, 0, 0)
	})

	t.Run("payer_excludes_own_share", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		payer := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		u3 := testutil.CreateTestUser(t, db)

		// 300 split three ways: each share is 100, but the payer's own
		// share never counts toward what they are owed.
		testutil.CreateTestExpense(t, db, payer.ID, 300, nil, payer.ID, u2.ID, u3.ID)

		summary, err := svc.GetDashboard(payer.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, summary, 200, 0)
	})

	t.Run("participant_owes_their_share", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		payer := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		u3 := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, payer.ID, 300, nil, payer.ID, u2.ID, u3.ID)

		summary, err := svc.GetDashboard(u2.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, summary, 0, 100)
	})

	t.Run("owed_and_owing_combine", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		// Alice paid 100 two ways: Bob owes her 50.
		testutil.CreateTestExpense(t, db, alice.ID, 100, nil, alice.ID, bob.ID)
		// Bob paid 40 two ways: Alice owes him 20.
		testutil.CreateTestExpense(t, db, bob.ID, 40, nil, alice.ID, bob.ID)

		summary, err := svc.GetDashboard(alice.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, summary, 50, 20)
	})

	t.Run("settled_shares_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		payer := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		expense := testutil.CreateTestExpense(t, db, payer.ID, 100, nil, payer.ID, other.ID)
		if err := db.Model(&models.ExpenseParticipant{}).
			Where("expense_id = ? AND user_id = ?", expense.ID, other.ID).
			Update("is_settled", true).Error; err != nil {
			t.Fatalf("failed to settle share: %v", err)
		}

		summary, err := svc.GetDashboard(payer.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, summary, 0, 0)
	})

	t.Run("settlement_rows_do_not_change_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)
		settlements := NewSettlementService(db, NewActivityService(db))
		payer := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, payer.ID, 100, nil, payer.ID, other.ID)

		before, err := svc.GetDashboard(payer.ID)
		testutil.AssertNoError(t, err)

		// Settlements are a separate ledger: paying back does not flip
		// participant rows, so the dashboard is unchanged.
		_, err = settlements.RecordSettlement(other.ID, payer.ID, 50, nil, "paying back", time.Now())
		testutil.AssertNoError(t, err)

		after, err := svc.GetDashboard(payer.ID)
		testutil.AssertNoError(t, err)
		assertSummary(t, after, before.TotalOwed, before.TotalOwing)
	})
}
