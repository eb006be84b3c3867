package session

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/cashpoint/atm-client/internal/models"
)

// Fixed keys for the durable copies. The user and account halves are
// persisted independently.
const (
	userKey    = "atm_user"
	accountKey = "atm_account"
)

// Session is the (User, Account) pair for the logged-in principal. It is
// either fully present or absent; consumers never observe half a session.
type Session struct {
	User    models.User
	Account models.Account
}

// Store is the single source of truth for the current session. All
// mutations replace whole values, so overlapping balance refreshes resolve
// to last write wins.
type Store struct {
	mu      sync.Mutex
	kv      KeyValueStore
	current *Session
}

// NewStore builds a session store over the given durable backend.
func NewStore(kv KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Login installs a new session and persists both halves.
func (s *Store) Login(user models.User, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	accountData, err := json.Marshal(account)
	if err != nil {
		return err
	}

	if err := s.kv.Set(userKey, userData); err != nil {
		return err
	}
	if err := s.kv.Set(accountKey, accountData); err != nil {
		// Erase both halves so a later Restore never pairs the new user
		// with a stale account.
		_ = s.kv.Delete(userKey)
		_ = s.kv.Delete(accountKey)
		return err
	}

	s.current = &Session{User: user, Account: account}
	log.Printf("[SESSION] Session established for user %d", user.ID)
	return nil
}

// Logout clears the in-memory session and erases the durable copies.
// Calling it without a session is harmless.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.kv.Delete(userKey); err != nil {
		return err
	}
	return s.kv.Delete(accountKey)
}

// UpdateAccount replaces the account half of the session and re-persists
// it. A call without an active session is ignored, which also discards
// balance responses that resolve after a logout.
func (s *Store) UpdateAccount(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		log.Println("[SESSION] UpdateAccount ignored, no active session")
		return nil
	}

	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	if err := s.kv.Set(accountKey, data); err != nil {
		return err
	}

	s.current.Account = account
	return nil
}

// Restore reloads the session from durable storage. If either half is
// missing or unreadable the session is absent; a partially-readable state
// never yields a partial session.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	userData, err := s.kv.Get(userKey)
	if err != nil {
		if err != ErrKeyNotFound {
			log.Printf("[SESSION] Restore failed reading user: %v", err)
		}
		return
	}
	accountData, err := s.kv.Get(accountKey)
	if err != nil {
		if err != ErrKeyNotFound {
			log.Printf("[SESSION] Restore failed reading account: %v", err)
		}
		return
	}

	var user models.User
	var account models.Account
	if err := json.Unmarshal(userData, &user); err != nil {
		log.Printf("[SESSION] Restore found corrupt user record: %v", err)
		return
	}
	if err := json.Unmarshal(accountData, &account); err != nil {
		log.Printf("[SESSION] Restore found corrupt account record: %v", err)
		return
	}

	s.current = &Session{User: user, Account: account}
	log.Printf("[SESSION] Session restored for user %d", user.ID)
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}
