package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonatorTotal(t *testing.T) {
	c := Campaign{Donators: []Donator{
		{Email: "a@example.com", TransactionID: "txn1", AmountInt: 5000},
		{Email: "b@example.com", TransactionID: "txn2", AmountInt: 2500},
	}}
	assert.Equal(t, int64(7500), c.DonatorTotal())
	assert.Zero(t, Campaign{}.DonatorTotal())
}

func TestDecisionValid(t *testing.T) {
	assert.True(t, DecisionAccept.Valid())
	assert.True(t, DecisionReject.Valid())
	assert.False(t, Decision("maybe").Valid())
	assert.False(t, Decision("").Valid())
}
