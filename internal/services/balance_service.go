package services

import (
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
)

// balanceService derives dashboard balances from unsettled participant rows.
// There is no stored or materialized balance; every call recomputes.
type balanceService struct {
	db *gorm.DB
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB) BalanceServicer {
	return &balanceService{db: db}
}

// GetDashboard sums the caller's unsettled ledger from raw rows:
// total_owed is what others owe on expenses the caller paid (the caller's
// own share excluded), total_owing is what the caller owes on expenses paid
// by others. The two sums are independent, so they run concurrently.
func (s *balanceService) GetDashboard(userID uint) (*DashboardSummary, error) {
	var owed, owing float64

	var g errgroup.Group
	g.Go(func() error {
		return s.sumOwedToUser(userID, &owed)
	})
	g.Go(func() error {
		return s.sumOwedByUser(userID, &owing)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalOwed:  owed,
		TotalOwing: owing,
		NetBalance: owed - owing,
	}, nil
}

// sumOwedToUser sums unsettled shares of other participants on expenses the
// user paid.
func (s *balanceService) sumOwedToUser(userID uint, out *float64) error {
	err := s.db.Model(&models.ExpenseParticipant{}).
		Select("COALESCE(SUM(expense_participants.amount_owed), 0)").
		Joins("JOIN expenses ON expenses.id = expense_participants.expense_id AND expenses.deleted_at IS NULL").
		Where("expenses.paid_by = ? AND expense_participants.user_id <> ? AND expense_participants.is_settled = ?",
			userID, userID, false).
		Scan(out).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// sumOwedByUser sums the user's unsettled shares on expenses paid by others.
func (s *balanceService) sumOwedByUser(userID uint, out *float64) error {
	err := s.db.Model(&models.ExpenseParticipant{}).
		Select("COALESCE(SUM(expense_participants.amount_owed), 0)").
		Joins("JOIN expenses ON expenses.id = expense_participants.expense_id AND expenses.deleted_at IS NULL").
		Where("expense_participants.user_id = ? AND expenses.paid_by <> ? AND expense_participants.is_settled = ?",
			userID, userID, false).
		Scan(out).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
