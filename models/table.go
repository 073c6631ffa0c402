package models

import (
	// Local Packages
	utils "tx-risk/utils"
)

// Table holds normalized transactions in ascending time order together with the
// participant and sender groupings derived from them. Positions are indexes into
// Transactions and are always ascending.
type Table struct {
	Transactions []NormalizedTransaction

	participants map[string][]int
	senders      map[string][]int
	receivers    map[string][]int
}

// NewTable indexes txs, which must already be sorted by CreatedAt.
func NewTable(txs []NormalizedTransaction) *Table {
	t := &Table{
		Transactions: txs,
		participants: make(map[string][]int),
		senders:      make(map[string][]int),
		receivers:    make(map[string][]int),
	}

	for i, tx := range txs {
		seen := make(map[string]struct{}, 3)
		for _, id := range []string{tx.SenderID, tx.ReceiverID, tx.Owner} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			t.participants[id] = append(t.participants[id], i)
		}
		if tx.SenderID != "" {
			t.senders[tx.SenderID] = append(t.senders[tx.SenderID], i)
		}
		if tx.ReceiverID != "" {
			t.receivers[tx.ReceiverID] = append(t.receivers[tx.ReceiverID], i)
		}
	}
	return t
}

func (t *Table) Len() int {
	return len(t.Transactions)
}

// Participants returns every id seen as sender, receiver or owner, sorted.
func (t *Table) Participants() []string {
	return utils.SortedKeys(t.participants)
}

// UserPositions returns the positions of transactions the user takes part in.
func (t *Table) UserPositions(userID string) []int {
	return t.participants[userID]
}

// Senders returns every sender id, sorted.
func (t *Table) Senders() []string {
	return utils.SortedKeys(t.senders)
}

// SenderPositions returns the positions of transactions sent by senderID.
func (t *Table) SenderPositions(senderID string) []int {
	return t.senders[senderID]
}

// Receivers returns every receiver id, sorted.
func (t *Table) Receivers() []string {
	return utils.SortedKeys(t.receivers)
}
