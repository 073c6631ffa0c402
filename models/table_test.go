package models_test

import (
	// Go Internal Packages
	"testing"
	"time"

	// Local Packages
	models "tx-risk/models"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTable_Index(t *testing.T) {
	at := time.Unix(0, 0).UTC()
	txs := []models.NormalizedTransaction{
		{CreatedAt: at, Amount: decimal.NewFromInt(1), SenderID: "alice", ReceiverID: "bob", Owner: "bob"},
		{CreatedAt: at, Amount: decimal.NewFromInt(2), SenderID: "bob", ReceiverID: "carol", Owner: "bob"},
		{CreatedAt: at, Amount: decimal.NewFromInt(3), Owner: "dave"},
	}

	table := models.NewTable(txs)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, table.Participants())
	assert.Equal(t, []int{0, 1}, table.UserPositions("bob"))
	assert.Equal(t, []int{2}, table.UserPositions("dave"))
	assert.Nil(t, table.UserPositions("erin"))
	assert.Equal(t, []string{"alice", "bob"}, table.Senders())
	assert.Equal(t, []int{1}, table.SenderPositions("bob"))
	assert.Equal(t, []string{"bob", "carol"}, table.Receivers())
}
