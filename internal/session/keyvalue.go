// Package session owns "who is logged in and what do they currently have":
// the in-memory (User, Account) pair plus its durable copy in a key-value
// store.
package session

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when no value exists for
// the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable storage capability the session layer needs.
// Any store with string keys satisfies it: files, Redis, an OS keychain.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileStore keeps one file per key under a directory. Writes go to a tmp
// file first and are moved into place with rename, so a crash mid-write
// never leaves a half-written value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (fs *FileStore) Set(key string, value []byte) error {
	path := fs.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (fs *FileStore) Delete(key string) error {
	err := os.Remove(fs.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
