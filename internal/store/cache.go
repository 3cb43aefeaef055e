package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerRepository implements Repository on a local BadgerDB, the same
// store the browser original kept in localStorage.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens (or creates) the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", dbPath, err)
	}

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the underlying database.
func (r *BadgerRepository) Close() error {
	return r.db.Close()
}

// Key layout: cache:{owner}/{repo} holds the serialized CacheEntry,
// token:{owner}/{repo} holds the raw write token.
func cacheKey(owner, repo string) []byte {
	return []byte(fmt.Sprintf("cache:%s/%s", owner, repo))
}

func tokenKey(owner, repo string) []byte {
	return []byte(fmt.Sprintf("token:%s/%s", owner, repo))
}

// ReadCache returns the persisted snapshot for owner/repo, or nil when
// there is none.
func (r *BadgerRepository) ReadCache(ctx context.Context, owner, repo string) (*CacheEntry, error) {
	raw, err := r.get(cacheKey(owner, repo))
	if err != nil {
		return nil, fmt.Errorf("read cache for %s/%s: %w", owner, repo, err)
	}
	if raw == nil {
		return nil, nil
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupted entry counts as a miss; the next write repairs it.
		r.log.WithError(err).Warn("Discarding unreadable cache entry")
		return nil, nil
	}
	return &entry, nil
}

// WriteCache replaces the persisted snapshot for owner/repo.
func (r *BadgerRepository) WriteCache(ctx context.Context, owner, repo string, entry CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(owner, repo), raw)
	})
	if err != nil {
		return fmt.Errorf("write cache for %s/%s: %w", owner, repo, err)
	}
	r.log.WithFields(logrus.Fields{
		"repo":  owner + "/" + repo,
		"items": len(entry.Items),
	}).Debug("Cache entry written")
	return nil
}

// SaveToken stores the write-capable token for owner/repo.
func (r *BadgerRepository) SaveToken(ctx context.Context, owner, repo, token string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey(owner, repo), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("save token for %s/%s: %w", owner, repo, err)
	}
	return nil
}

// Token returns the stored token, or "" when none was saved.
func (r *BadgerRepository) Token(ctx context.Context, owner, repo string) (string, error) {
	raw, err := r.get(tokenKey(owner, repo))
	if err != nil {
		return "", fmt.Errorf("read token for %s/%s: %w", owner, repo, err)
	}
	return string(raw), nil
}

func (r *BadgerRepository) get(key []byte) ([]byte, error) {
	var out []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// badgerLogger adapts logrus to Badger's internal logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warningf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Debugf(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }
