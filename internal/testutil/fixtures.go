package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"divvy/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		FullName: fmt.Sprintf("Test User %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroup creates a group with the creator enrolled as a member.
func CreateTestGroup(t *testing.T, db *gorm.DB, creatorID uint) *models.Group {
	t.Helper()

	group := &models.Group{
		Name:      fmt.Sprintf("Test Group %d", nextID()),
		CreatedBy: creatorID,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	AddTestGroupMember(t, db, group.ID, creatorID)
	return group
}

// AddTestGroupMember enrolls a user into a group.
func AddTestGroupMember(t *testing.T, db *gorm.DB, groupID, userID uint) *models.GroupMember {
	t.Helper()

	member := &models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test group member: %v", err)
	}
	return member
}

// CreateTestFriendship creates a friendship row with the given status.
func CreateTestFriendship(t *testing.T, db *gorm.DB, userID, friendID uint, status models.FriendshipStatus) *models.Friendship {
	t.Helper()

	friendship := &models.Friendship{
		UserID:   userID,
		FriendID: friendID,
		Status:   status,
	}
	if err := db.Create(friendship).Error; err != nil {
		t.Fatalf("failed to create test friendship: %v", err)
	}
	return friendship
}

// CreateTestExpense creates an expense split equally across the participants.
// The payer must be included in participantIDs if they should carry a share.
func CreateTestExpense(t *testing.T, db *gorm.DB, paidBy uint, amount float64, groupID *uint, participantIDs ...uint) *models.Expense {
	t.Helper()

	if len(participantIDs) == 0 {
		t.Fatal("test expense needs at least one participant")
	}

	expense := &models.Expense{
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      amount,
		Category:    models.ExpenseCategoryOther,
		PaidBy:      paidBy,
		GroupID:     groupID,
		ExpenseDate: time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}

	share := amount / float64(len(participantIDs))
	for _, userID := range participantIDs {
		participant := &models.ExpenseParticipant{
			ExpenseID:  expense.ID,
			UserID:     userID,
			AmountOwed: share,
		}
		if err := db.Create(participant).Error; err != nil {
			t.Fatalf("failed to create test expense participant: %v", err)
		}
	}
	return expense
}

// CreateTestSettlement records a payment between two users.
func CreateTestSettlement(t *testing.T, db *gorm.DB, fromUser, toUser uint, amount float64) *models.Settlement {
	t.Helper()

	settlement := &models.Settlement{
		FromUser:  fromUser,
		ToUser:    toUser,
		Amount:    amount,
		SettledAt: time.Now(),
	}
	if err := db.Create(settlement).Error; err != nil {
		t.Fatalf("failed to create test settlement: %v", err)
	}
	return settlement
}
