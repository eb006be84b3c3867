package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/session"
)

// TransactionService validates and submits deposits and withdrawals. The
// guards are advisory only; the backend remains authoritative and may
// still reject a request that passed them on a stale cached balance.
type TransactionService struct {
	gateway  Gateway
	sessions *session.Store
	audit    *AuditLogger
}

func NewTransactionService(gateway Gateway, sessions *session.Store) *TransactionService {
	return &TransactionService{
		gateway:  gateway,
		sessions: sessions,
		audit:    NewAuditLogger(),
	}
}

// Deposit parses and submits a deposit, then resyncs the account snapshot.
func (ts *TransactionService) Deposit(ctx context.Context, amount string) error {
	sess := ts.sessions.Current()
	if sess == nil {
		return &apperrors.SessionAbsentError{}
	}

	value, err := parseAmount(amount)
	if err != nil {
		return err
	}

	if err := ts.gateway.Deposit(ctx, sess.Account.ID, value); err != nil {
		ts.audit.LogError("DEPOSIT", sess.Account.ID, value, err)
		return err
	}

	if err := ts.resync(ctx, sess.User.ID); err != nil {
		ts.audit.LogError("DEPOSIT_RESYNC", sess.Account.ID, value, err)
		return err
	}

	ts.audit.LogTransaction("DEPOSIT", sess.Account.ID, value, "SUCCESS")
	return nil
}

// Withdraw parses and submits a withdrawal, then resyncs the account
// snapshot. The cached balance guards against obviously-overdrawn requests
// before any network call.
func (ts *TransactionService) Withdraw(ctx context.Context, amount string) error {
	sess := ts.sessions.Current()
	if sess == nil {
		return &apperrors.SessionAbsentError{}
	}

	value, err := parseAmount(amount)
	if err != nil {
		return err
	}

	if value.GreaterThan(sess.Account.Balance) {
		log.Printf("[TRANSACTION] Withdrawal of %s rejected, cached balance %s", value, sess.Account.Balance)
		return apperrors.NewValidationError("insufficient funds")
	}

	if err := ts.gateway.Withdraw(ctx, sess.Account.ID, value); err != nil {
		ts.audit.LogError("WITHDRAW", sess.Account.ID, value, err)
		return err
	}

	if err := ts.resync(ctx, sess.User.ID); err != nil {
		ts.audit.LogError("WITHDRAW_RESYNC", sess.Account.ID, value, err)
		return err
	}

	ts.audit.LogTransaction("WITHDRAW", sess.Account.ID, value, "SUCCESS")
	return nil
}

// RefreshBalance re-reads the authoritative balance and replaces the
// cached snapshot.
func (ts *TransactionService) RefreshBalance(ctx context.Context) error {
	sess := ts.sessions.Current()
	if sess == nil {
		return &apperrors.SessionAbsentError{}
	}
	return ts.resync(ctx, sess.User.ID)
}

// resync replaces the cached account with the server's snapshot. The
// balance is never adjusted by local arithmetic; truth always comes from
// this re-read.
func (ts *TransactionService) resync(ctx context.Context, userID int64) error {
	account, err := ts.gateway.FetchBalance(ctx, userID)
	if err != nil {
		log.Printf("[TRANSACTION] Balance resync failed for user %d: %v", userID, err)
		return err
	}
	return ts.sessions.UpdateAccount(account)
}

func parseAmount(amount string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil || !value.IsPositive() {
		return decimal.Decimal{}, apperrors.NewValidationError("invalid amount")
	}
	return value, nil
}
