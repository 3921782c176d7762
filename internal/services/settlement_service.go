package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/pagination"
)

// settlementService handles per-counterparty netting and settlement recording.
type settlementService struct {
	db       *gorm.DB
	activity ActivityServicer
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, activity ActivityServicer) SettlementServicer {
	return &settlementService{db: db, activity: activity}
}

// participantRow is the join shape the netting fold works on.
type participantRow struct {
	UserID     uint
	PaidBy     uint
	AmountOwed float64
}

// GetNetBalances folds the caller's unsettled participant rows into a signed
// amount per counterparty: debts the caller owes contribute negatively, debts
// owed to the caller contribute positively. Pairs that net to exactly zero
// are dropped. Recorded settlements are not consulted, so this view and the
// dashboard totals can diverge after a settlement.
func (s *settlementService) GetNetBalances(userID uint) ([]CounterpartyBalance, error) {
	net := make(map[uint]float64)

	// Pass 1: rows where the caller owes the payer.
	var owedByUser []participantRow
	if err := s.db.Model(&models.ExpenseParticipant{}).
		Select("expense_participants.user_id, expenses.paid_by, expense_participants.amount_owed").
		Joins("JOIN expenses ON expenses.id = expense_participants.expense_id AND expenses.deleted_at IS NULL").
		Where("expense_participants.user_id = ? AND expenses.paid_by <> ? AND expense_participants.is_settled = ?",
			userID, userID, false).
		Scan(&owedByUser).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, row := range owedByUser {
		net[row.PaidBy] -= row.AmountOwed
	}

	// Pass 2: rows where others owe the caller.
	var owedToUser []participantRow
	if err := s.db.Model(&models.ExpenseParticipant{}).
		Select("expense_participants.user_id, expenses.paid_by, expense_participants.amount_owed").
		Joins("JOIN expenses ON expenses.id = expense_participants.expense_id AND expenses.deleted_at IS NULL").
		Where("expenses.paid_by = ? AND expense_participants.user_id <> ? AND expense_participants.is_settled = ?",
			userID, userID, false).
		Scan(&owedToUser).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, row := range owedToUser {
		net[row.UserID] += row.AmountOwed
	}

	// Drop pairs that cancel out exactly.
	ids := make([]uint, 0, len(net))
	for id, amount := range net {
		if amount == 0 {
			continue
		}
		ids = append(ids, id)
	}

	balances := []CounterpartyBalance{}
	if len(ids) == 0 {
		return balances, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, id := range ids {
		u := byID[id]
		balances = append(balances, CounterpartyBalance{
			UserID:   id,
			FullName: u.FullName,
			Email:    u.Email,
			Amount:   net[id],
		})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })

	return balances, nil
}

// RecordSettlement appends a settlement row. The underlying participant rows
// are left untouched; settlements are a separate ledger.
func (s *settlementService) RecordSettlement(
	fromUser, toUser uint,
	amount float64,
	groupID *uint,
	description string,
	settledAt time.Time,
) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromUser == toUser {
		return nil, apperrors.ErrSelfSettlement
	}
	if settledAt.IsZero() {
		settledAt = time.Now()
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", toUser).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	settlement := &models.Settlement{
		FromUser:    fromUser,
		ToUser:      toUser,
		Amount:      amount,
		GroupID:     groupID,
		Description: description,
		SettledAt:   settledAt,
	}
	if err := s.db.Create(settlement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.activity.Record(fromUser, models.ActivitySettlementAdded,
		fmt.Sprintf("Settled %.2f", amount), nil, groupID)

	return settlement, nil
}

// GetUserSettlements lists settlements the caller sent or received.
func (s *settlementService) GetUserSettlements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error) {
	page.Defaults()

	base := s.db.Model(&models.Settlement{}).
		Where("from_user = ? OR to_user = ?", userID, userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var settlements []models.Settlement
	if err := base.Scopes(pagination.Paginate(page)).
		Order("settled_at DESC").
		Find(&settlements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(settlements, page.Page, page.PageSize, totalItems)
	return &result, nil
}
