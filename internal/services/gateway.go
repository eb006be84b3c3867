package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cashpoint/atm-client/internal/models"
)

// Gateway is the backend capability surface the services depend on.
// Satisfied by gateway.Client in production and by a mock in tests.
type Gateway interface {
	Authenticate(ctx context.Context, creds models.Credentials) (string, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FetchBalance(ctx context.Context, userID int64) (models.Account, error)
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) error
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) error
	FetchHistory(ctx context.Context, accountID int64, pageNo, pageSize int) (models.HistoryPage, error)
}
