package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/cashpoint/atm-client/internal/models"
	"github.com/cashpoint/atm-client/internal/session"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Authenticate(ctx context.Context, creds models.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockGateway) FetchBalance(ctx context.Context, userID int64) (models.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockGateway) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockGateway) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockGateway) FetchHistory(ctx context.Context, accountID int64, pageNo, pageSize int) (models.HistoryPage, error) {
	args := m.Called(ctx, accountID, pageNo, pageSize)
	return args.Get(0).(models.HistoryPage), args.Error(1)
}

// memoryKV is an in-memory KeyValueStore for session tests.
type memoryKV struct {
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, session.ErrKeyNotFound
	}
	return data, nil
}

func (m *memoryKV) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func loggedInStore(user models.User, account models.Account) *session.Store {
	store := session.NewStore(newMemoryKV())
	_ = store.Login(user, account)
	return store
}
