package testutil_test

import (
	"testing"

	"divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "groups", "group_members", "friendships", "expenses", "expense_participants", "settlements", "activities"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	other := testutil.CreateTestUser(t, db)

	group := testutil.CreateTestGroup(t, db, user.ID)
	var members int64
	if err := db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&members).Error; err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	if members != 1 {
		t.Errorf("expected creator to be enrolled, got %d members", members)
	}

	friendship := testutil.CreateTestFriendship(t, db, user.ID, other.ID, models.FriendshipStatusAccepted)
	if friendship.Status != models.FriendshipStatusAccepted {
		t.Errorf("expected accepted friendship, got %s", friendship.Status)
	}

	expense := testutil.CreateTestExpense(t, db, user.ID, 100, nil, user.ID, other.ID)
	var shares []models.ExpenseParticipant
	if err := db.Where("expense_id = ?", expense.ID).Find(&shares).Error; err != nil {
		t.Fatalf("failed to load participants: %v", err)
	}
	if len(shares) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(shares))
	}
	for _, share := range shares {
		if share.AmountOwed != 50 {
			t.Errorf("expected share 50, got %f", share.AmountOwed)
		}
	}

	settlement := testutil.CreateTestSettlement(t, db, other.ID, user.ID, 50)
	if settlement.Amount != 50 {
		t.Errorf("expected settlement amount 50, got %f", settlement.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGroupNotFound, "custom message")
	testutil.AssertAppError(t, err, "GROUP_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
