package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventStatus(t *testing.T) {
	assert.True(t, EventOnSale.Purchasable())
	for _, s := range []EventStatus{EventDraft, EventSoldOut, EventClosed, EventCancelled} {
		assert.True(t, s.Valid())
		assert.False(t, s.Purchasable(), s)
	}
	assert.False(t, EventStatus("archived").Valid())
}

func TestPromotionalCode_AppliesTo(t *testing.T) {
	open := &PromotionalCode{Code: "ALL"}
	assert.True(t, open.AppliesTo(42))

	restricted := &PromotionalCode{Code: "PARIS", Events: []Event{{ID: 1}, {ID: 3}}}
	assert.True(t, restricted.AppliesTo(3))
	assert.False(t, restricted.AppliesTo(2))
}

func TestPromotionalCode_Exhausted(t *testing.T) {
	limit := 2
	assert.False(t, (&PromotionalCode{UsedCount: 100}).Exhausted())
	assert.False(t, (&PromotionalCode{UsageLimit: &limit, UsedCount: 1}).Exhausted())
	assert.True(t, (&PromotionalCode{UsageLimit: &limit, UsedCount: 2}).Exhausted())
}

func TestRegistration_OwnedBy(t *testing.T) {
	owner := "user-1"
	assert.True(t, (&Registration{UserID: &owner}).OwnedBy("user-1"))
	assert.False(t, (&Registration{UserID: &owner}).OwnedBy("user-2"))
	assert.False(t, (&Registration{}).OwnedBy("user-1"))
}

func TestApprovalStatus_Valid(t *testing.T) {
	assert.True(t, ApprovalPending.Valid())
	assert.True(t, ApprovalRejected.Valid())
	assert.False(t, ApprovalStatus("maybe").Valid())
}
