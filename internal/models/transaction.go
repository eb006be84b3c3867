package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend takes and returns amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account is the client-side snapshot of the server's account state.
// Balance is never updated by local arithmetic; the whole snapshot is
// replaced after each server round trip.
type Account struct {
	ID      int64           `json:"id" example:"1"`
	Balance decimal.Decimal `json:"balance" example:"1500.00"`
}

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
)

// Transaction is a ledger entry as reported by the backend. Read-only on
// the client.
type Transaction struct {
	ID        int64           `json:"id" example:"42"`
	Type      TransactionType `json:"type" example:"DEPOSIT"`
	Amount    decimal.Decimal `json:"amount" example:"250.00"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TransactionRequest is the submission payload for deposit and withdrawal
// calls.
type TransactionRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Type   TransactionType `json:"type" validate:"required,oneof=DEPOSIT WITHDRAW"`
}

// HistoryPage is one page of transaction history. Transient; rebuilt on
// every query.
type HistoryPage struct {
	Content    []Transaction `json:"content"`
	PageNo     int           `json:"pageNo"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
