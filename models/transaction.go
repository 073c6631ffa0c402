package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

// Transaction is a raw record as exported by the wallet backend. CreatedAt and Amount are kept
// loosely typed (json.Number, string, int64, float64 or a BSON decimal) and coerced by the
// normalizer; every other field is optional.
type Transaction struct {
	ID           string `json:"_id,omitempty" bson:"_id,omitempty"`
	CreatedAt    any    `json:"createdAt" bson:"createdAt"`
	Amount       any    `json:"amount" bson:"amount"`
	SenderID     string `json:"senderId,omitempty" bson:"senderId,omitempty"`
	ReceiverID   string `json:"receiverId,omitempty" bson:"receiverId,omitempty"`
	Owner        string `json:"owner,omitempty" bson:"owner,omitempty"`
	Type         string `json:"type,omitempty" bson:"type,omitempty"`
	Status       string `json:"status,omitempty" bson:"status,omitempty"`
	GiftID       string `json:"giftId,omitempty" bson:"giftId,omitempty"`
	LivestreamID string `json:"livestreamId,omitempty" bson:"livestreamId,omitempty"`
	TxHash       string `json:"txHash,omitempty" bson:"txHash,omitempty"`
}

// NormalizedTransaction is a Transaction with a decimal amount and a UTC creation time.
type NormalizedTransaction struct {
	ID           string
	CreatedAt    time.Time
	Amount       decimal.Decimal
	SenderID     string
	ReceiverID   string
	Owner        string
	Type         string
	Status       string
	GiftID       string
	LivestreamID string
	TxHash       string
}
