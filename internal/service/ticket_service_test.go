package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
)

func sampleTicket() *models.Ticket {
	return &models.Ticket{
		ID:       3,
		EventID:  1,
		Name:     "Elite",
		Price:    5500,
		Currency: "eur",
	}
}

func foundEvent() *mockEventRepo {
	return &mockEventRepo{findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
		e := sampleEvent()
		e.ID = id
		return e, nil
	}}
}

func TestCreateTicket_NormalizesCurrency(t *testing.T) {
	var saved *models.Ticket
	tickets := &mockTicketRepo{createFn: func(ctx context.Context, ticket *models.Ticket) error {
		saved = ticket
		return nil
	}}
	tk := sampleTicket()
	tk.Currency = " EUR "

	err := NewTicketService(tickets, foundEvent(), &mockRegRepo{}).CreateTicket(context.Background(), tk)

	require.NoError(t, err)
	assert.Equal(t, "eur", saved.Currency)
}

func TestCreateTicket_EventMissing(t *testing.T) {
	events := &mockEventRepo{findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
		return nil, gorm.ErrRecordNotFound
	}}

	err := NewTicketService(&mockTicketRepo{}, events, &mockRegRepo{}).CreateTicket(context.Background(), sampleTicket())

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateTicket_CannotMoveEvent(t *testing.T) {
	tickets := &mockTicketRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Ticket, error) { return sampleTicket(), nil },
		updateFn:   func(ctx context.Context, ticket *models.Ticket) error { return nil },
	}
	tk := sampleTicket()
	tk.EventID = 42

	err := NewTicketService(tickets, foundEvent(), &mockRegRepo{}).UpdateTicket(context.Background(), tk)

	require.NoError(t, err)
	assert.Equal(t, uint(1), tk.EventID)
}

func TestDeleteTicket_Sold(t *testing.T) {
	regs := &mockRegRepo{countByTicketFn: func(ctx context.Context, tx *gorm.DB, ticketID uint) (int64, error) {
		return 2, nil
	}}

	err := NewTicketService(&mockTicketRepo{}, foundEvent(), regs).DeleteTicket(context.Background(), 3)

	assert.ErrorIs(t, err, ErrTicketInUse)
}

func TestDeleteTicket_ForeignKeyViolation(t *testing.T) {
	tickets := &mockTicketRepo{deleteFn: func(ctx context.Context, id uint) error {
		return gorm.ErrForeignKeyViolated
	}}

	err := NewTicketService(tickets, foundEvent(), &mockRegRepo{}).DeleteTicket(context.Background(), 3)

	assert.ErrorIs(t, err, ErrTicketInUse)
}

func TestGetTicket_NotFound(t *testing.T) {
	tickets := &mockTicketRepo{findByIDFn: func(ctx context.Context, id uint) (*models.Ticket, error) {
		return nil, gorm.ErrRecordNotFound
	}}

	_, err := NewTicketService(tickets, foundEvent(), &mockRegRepo{}).GetTicket(context.Background(), 3)

	assert.ErrorIs(t, err, ErrTicketNotFound)
}
