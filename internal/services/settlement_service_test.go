package services

import (
	"math"
	"testing"
	"time"

	"divvy/internal/models"
	"divvy/internal/pagination"
	"divvy/internal/testutil"
)

func TestGetNetBalances(t *testing.T) {
	t.Run("counterparties_are_netted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		// Bob owes Alice 50, Alice owes Bob 20: net +30 from Alice's side.
		testutil.CreateTestExpense(t, db, alice.ID, 100, nil, alice.ID, bob.ID)
		testutil.CreateTestExpense(t, db, bob.ID, 40, nil, alice.ID, bob.ID)

		balances, err := svc.GetNetBalances(alice.ID)
		testutil.AssertNoError(t, err)

		if len(balances) != 1 {
			t.Fatalf("expected 1 counterparty, got %d", len(balances))
		}
		if balances[0].UserID != bob.ID {
			t.Errorf("expected counterparty %d, got %d", bob.ID, balances[0].UserID)
		}
		if math.Abs(balances[0].Amount-30) > 0.01 {
			t.Errorf("expected net +30, got %f", balances[0].Amount)
		}
		if balances[0].Email == "" {
			t.Error("expected counterparty email to be resolved")
		}
	})

	t.Run("sign_flips_for_other_side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, alice.ID, 100, nil, alice.ID, bob.ID)

		balances, err := svc.GetNetBalances(bob.ID)
		testutil.AssertNoError(t, err)

		if len(balances) != 1 {
			t.Fatalf("expected 1 counterparty, got %d", len(balances))
		}
		if math.Abs(balances[0].Amount-(-50)) > 0.01 {
			t.Errorf("expected net -50 from Bob's side, got %f", balances[0].Amount)
		}
	})

	t.Run("exact_zero_pairs_dropped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		// Equal and opposite debts cancel exactly.
		testutil.CreateTestExpense(t, db, alice.ID, 100, nil, alice.ID, bob.ID)
		testutil.CreateTestExpense(t, db, bob.ID, 100, nil, alice.ID, bob.ID)

		balances, err := svc.GetNetBalances(alice.ID)
		testutil.AssertNoError(t, err)
		if len(balances) != 0 {
			t.Errorf("expected zero-net pair to be dropped, got %d entries", len(balances))
		}
	})

	t.Run("sorted_by_user_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		payer := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		u3 := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, payer.ID, 300, nil, payer.ID, u2.ID, u3.ID)

		balances, err := svc.GetNetBalances(payer.ID)
		testutil.AssertNoError(t, err)

		if len(balances) != 2 {
			t.Fatalf("expected 2 counterparties, got %d", len(balances))
		}
		if balances[0].UserID > balances[1].UserID {
			t.Error("expected balances sorted by user ID")
		}
		for _, b := range balances {
			if math.Abs(b.Amount-100) > 0.01 {
				t.Errorf("expected each to owe 100, got %f", b.Amount)
			}
		}
	})
}

func TestRecordSettlement(t *testing.T) {
	t.Run("appends_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		settlement, err := svc.RecordSettlement(alice.ID, bob.ID, 25, nil, "lunch money", time.Now())
		testutil.AssertNoError(t, err)

		if settlement.ID == 0 {
			t.Fatal("expected non-zero settlement ID")
		}
		if settlement.FromUser != alice.ID || settlement.ToUser != bob.ID {
			t.Errorf("expected %d -> %d, got %d -> %d",
				alice.ID, bob.ID, settlement.FromUser, settlement.ToUser)
		}
	})

	t.Run("leaves_participant_rows_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		expense := testutil.CreateTestExpense(t, db, alice.ID, 100, nil, alice.ID, bob.ID)

		_, err := svc.RecordSettlement(bob.ID, alice.ID, 50, nil, "", time.Now())
		testutil.AssertNoError(t, err)

		var settled int64
		if err := db.Model(&models.ExpenseParticipant{}).
			Where("expense_id = ? AND is_settled = ?", expense.ID, true).
			Count(&settled).Error; err != nil {
			t.Fatalf("failed to count settled rows: %v", err)
		}
		if settled != 0 {
			t.Errorf("expected no participant rows flipped, got %d", settled)
		}
	})

	t.Run("self_settlement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)

		_, err := svc.RecordSettlement(alice.ID, alice.ID, 10, nil, "", time.Now())
		testutil.AssertAppError(t, err, "SELF_SETTLEMENT")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.RecordSettlement(alice.ID, bob.ID, 0, nil, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.RecordSettlement(alice.ID, bob.ID, -5, nil, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_recipient", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewActivityService(db))
		alice := testutil.CreateTestUser(t, db)

		_, err := svc.RecordSettlement(alice.ID, 99999, 10, nil, "", time.Now())
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserSettlements(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettlementService(db, NewActivityService(db))
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	carol := testutil.CreateTestUser(t, db)

	testutil.CreateTestSettlement(t, db, alice.ID, bob.ID, 10)
	testutil.CreateTestSettlement(t, db, carol.ID, alice.ID, 20)
	testutil.CreateTestSettlement(t, db, bob.ID, carol.ID, 30) // not Alice's

	result, err := svc.GetUserSettlements(alice.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 settlements for Alice, got %d", result.TotalItems)
	}
	for _, s := range result.Data {
		if s.FromUser != alice.ID && s.ToUser != alice.ID {
			t.Errorf("settlement %d does not involve Alice", s.ID)
		}
	}
}
