package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/models"
	"github.com/cashpoint/atm-client/internal/session"
)

func TestTransactionService_Deposit(t *testing.T) {
	ctx := context.Background()
	user := models.User{ID: 7, Email: "a@b.com", Username: "abby"}
	account := models.Account{ID: 3, Balance: decimal.RequireFromString("100.00")}

	t.Run("invalid amounts fail before any network call", func(t *testing.T) {
		gw := &MockGateway{}
		service := NewTransactionService(gw, loggedInStore(user, account))

		for _, amount := range []string{"abc", "", "-5", "0", "NaN"} {
			err := service.Deposit(ctx, amount)
			var verr *apperrors.ValidationError
			assert.ErrorAs(t, err, &verr, "amount %q", amount)
			assert.Equal(t, "invalid amount", verr.Message)
		}
		gw.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
		gw.AssertNotCalled(t, "FetchBalance", mock.Anything, mock.Anything)
	})

	t.Run("deposit larger than balance is accepted", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		amount := decimal.RequireFromString("500")
		gw.On("Deposit", ctx, int64(3), amount).Return(nil)
		gw.On("FetchBalance", ctx, int64(7)).Return(models.Account{ID: 3, Balance: decimal.RequireFromString("600.00")}, nil)

		assert.NoError(t, service.Deposit(ctx, "500"))
		gw.AssertExpectations(t)
	})

	t.Run("successful deposit resyncs from server response", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		var calls []string
		amount := decimal.RequireFromString("50")
		serverBalance := decimal.RequireFromString("150.00")
		gw.On("Deposit", ctx, int64(3), amount).Run(func(mock.Arguments) {
			calls = append(calls, "deposit")
		}).Return(nil)
		gw.On("FetchBalance", ctx, int64(7)).Run(func(mock.Arguments) {
			calls = append(calls, "fetchBalance")
		}).Return(models.Account{ID: 3, Balance: serverBalance}, nil)

		assert.NoError(t, service.Deposit(ctx, "50"))

		// Mutate first, then resync; the visible balance is exactly the
		// server's snapshot, not a locally-incremented value.
		assert.Equal(t, []string{"deposit", "fetchBalance"}, calls)
		assert.True(t, sessions.Current().Account.Balance.Equal(serverBalance))
	})

	t.Run("gateway failure leaves cached account unchanged", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		remote := &apperrors.RemoteError{StatusCode: 500, Message: "ledger unavailable"}
		gw.On("Deposit", ctx, int64(3), decimal.RequireFromString("50")).Return(remote)

		err := service.Deposit(ctx, "50")
		var rerr *apperrors.RemoteError
		assert.ErrorAs(t, err, &rerr)
		assert.Equal(t, "ledger unavailable", rerr.Message)

		assert.True(t, sessions.Current().Account.Balance.Equal(account.Balance))
		gw.AssertNotCalled(t, "FetchBalance", mock.Anything, mock.Anything)
	})

	t.Run("no session", func(t *testing.T) {
		gw := &MockGateway{}
		service := NewTransactionService(gw, session.NewStore(newMemoryKV()))

		err := service.Deposit(ctx, "50")
		var serr *apperrors.SessionAbsentError
		assert.ErrorAs(t, err, &serr)
	})
}

func TestTransactionService_Withdraw(t *testing.T) {
	ctx := context.Background()
	user := models.User{ID: 7, Email: "a@b.com", Username: "abby"}
	account := models.Account{ID: 3, Balance: decimal.RequireFromString("100.00")}

	t.Run("amount above cached balance fails before any network call", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		err := service.Withdraw(ctx, "150")
		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "insufficient funds", verr.Message)

		assert.True(t, sessions.Current().Account.Balance.Equal(account.Balance))
		gw.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
		gw.AssertNotCalled(t, "FetchBalance", mock.Anything, mock.Anything)
	})

	t.Run("withdrawing the exact balance is allowed", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		amount := decimal.RequireFromString("100.00")
		gw.On("Withdraw", ctx, int64(3), amount).Return(nil)
		gw.On("FetchBalance", ctx, int64(7)).Return(models.Account{ID: 3, Balance: decimal.Zero}, nil)

		assert.NoError(t, service.Withdraw(ctx, "100.00"))
		assert.True(t, sessions.Current().Account.Balance.IsZero())
	})

	t.Run("successful withdrawal resyncs from server response", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		amount := decimal.RequireFromString("40")
		serverBalance := decimal.RequireFromString("60.00")
		gw.On("Withdraw", ctx, int64(3), amount).Return(nil)
		gw.On("FetchBalance", ctx, int64(7)).Return(models.Account{ID: 3, Balance: serverBalance}, nil)

		assert.NoError(t, service.Withdraw(ctx, "40"))
		assert.True(t, sessions.Current().Account.Balance.Equal(serverBalance))
		gw.AssertExpectations(t)
	})

	t.Run("backend rejection on stale balance propagates its message", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		// The cached 100.00 passed the guard, but the server-side balance
		// had already dropped.
		remote := &apperrors.RemoteError{StatusCode: 400, Message: "Insufficient balance"}
		gw.On("Withdraw", ctx, int64(3), decimal.RequireFromString("80")).Return(remote)

		err := service.Withdraw(ctx, "80")
		assert.EqualError(t, err, "Insufficient balance")
		assert.True(t, sessions.Current().Account.Balance.Equal(account.Balance))
	})
}

func TestTransactionService_RefreshBalance(t *testing.T) {
	ctx := context.Background()
	user := models.User{ID: 7, Email: "a@b.com", Username: "abby"}
	account := models.Account{ID: 3, Balance: decimal.RequireFromString("100.00")}

	t.Run("replaces snapshot wholesale", func(t *testing.T) {
		gw := &MockGateway{}
		sessions := loggedInStore(user, account)
		service := NewTransactionService(gw, sessions)

		fresh := models.Account{ID: 3, Balance: decimal.RequireFromString("123.45")}
		gw.On("FetchBalance", ctx, int64(7)).Return(fresh, nil)

		assert.NoError(t, service.RefreshBalance(ctx))
		assert.True(t, sessions.Current().Account.Balance.Equal(fresh.Balance))
	})

	t.Run("no session", func(t *testing.T) {
		gw := &MockGateway{}
		service := NewTransactionService(gw, session.NewStore(newMemoryKV()))

		var serr *apperrors.SessionAbsentError
		assert.ErrorAs(t, service.RefreshBalance(ctx), &serr)
		gw.AssertNotCalled(t, "FetchBalance", mock.Anything, mock.Anything)
	})
}
