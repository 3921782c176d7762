package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/pagination"
)

// expenseService handles expense creation and visibility.
type expenseService struct {
	db       *gorm.DB
	groups   GroupServicer
	activity ActivityServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, groups GroupServicer, activity ActivityServicer) ExpenseServicer {
	return &expenseService{db: db, groups: groups, activity: activity}
}

// CreateExpense creates an expense split equally across its participants.
// The payer is always a participant. For group expenses an empty participant
// list defaults to every group member. The expense and its participant rows
// are written in one transaction.
func (s *expenseService) CreateExpense(
	payerID uint,
	description string,
	amount float64,
	category models.ExpenseCategory,
	groupID *uint,
	date time.Time,
	participantIDs []uint,
) (*models.Expense, error) {
	// Validate input before any write
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if category == "" {
		category = models.ExpenseCategoryOther
	}
	if date.IsZero() {
		date = time.Now()
	}

	if groupID != nil {
		member, err := s.groups.IsMember(*groupID, payerID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.ErrNotGroupMember
		}

		if len(participantIDs) == 0 {
			members, err := s.groups.GetGroupMembers(payerID, *groupID)
			if err != nil {
				return nil, err
			}
			for _, m := range members {
				participantIDs = append(participantIDs, m.UserID)
			}
		}
	}

	// Non-group expenses carry no member list to fall back on.
	if len(participantIDs) == 0 {
		return nil, apperrors.ErrNoParticipants
	}
	participantIDs = includePayer(dedupe(participantIDs), payerID)

	// Equal split. Plain division: no remainder redistribution, so the
	// participant shares may not sum to the amount exactly.
	amountPerPerson := amount / float64(len(participantIDs))

	expense := &models.Expense{
		Description: description,
		Amount:      amount,
		Category:    category,
		PaidBy:      payerID,
		GroupID:     groupID,
		ExpenseDate: date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		participants := make([]models.ExpenseParticipant, 0, len(participantIDs))
		for _, id := range participantIDs {
			participants = append(participants, models.ExpenseParticipant{
				ExpenseID:  expense.ID,
				UserID:     id,
				AmountOwed: amountPerPerson,
				IsSettled:  false,
			})
		}
		if err := tx.Create(&participants).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		expense.Participants = participants
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(payerID, models.ActivityExpenseAdded,
		fmt.Sprintf("Added expense %q for %.2f", expense.Description, expense.Amount),
		&expense.ID, groupID)

	return expense, nil
}

// GetExpenseByID retrieves an expense. It is visible to the caller only if
// they paid it, are a member of its group, or are a listed participant.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Participants").First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	visible, err := s.canSee(userID, &expense)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrExpenseNotFound
	}
	return &expense, nil
}

// GetGroupExpenses lists a group's expenses for a member, newest first.
func (s *expenseService) GetGroupExpenses(userID, groupID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	member, err := s.groups.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrNotGroupMember
	}

	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("group_id = ?", groupID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Participants").
		Scopes(pagination.Paginate(page)).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetUserExpenses lists expenses the caller paid or participates in.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).
		Where("paid_by = ? OR id IN (?)", userID,
			s.db.Model(&models.ExpenseParticipant{}).Select("expense_id").Where("user_id = ?", userID))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Participants").
		Scopes(pagination.Paginate(page)).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *expenseService) canSee(userID uint, expense *models.Expense) (bool, error) {
	if expense.PaidBy == userID {
		return true, nil
	}
	for _, p := range expense.Participants {
		if p.UserID == userID {
			return true, nil
		}
	}
	if expense.GroupID != nil {
		return s.groups.IsMember(*expense.GroupID, userID)
	}
	return false, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func includePayer(ids []uint, payerID uint) []uint {
	for _, id := range ids {
		if id == payerID {
			return ids
		}
	}
	return append(ids, payerID)
}
