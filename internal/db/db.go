package db

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var (
	shared     *Store
	sharedErr  error
	sharedOnce sync.Once
)

var JournalBucket = []byte("journal")

var ErrBucketNotFound = errors.New("bucket not found")

// Store is the local state database.
type Store struct {
	bolt *bbolt.DB
}

// Open returns the process-wide store under ~/.ddns-cli.
func Open() (*Store, error) {
	sharedOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			sharedErr = err
			return
		}
		dir := filepath.Join(home, ".ddns-cli")
		if err := os.MkdirAll(dir, 0700); err != nil {
			sharedErr = err
			return
		}
		shared, sharedErr = OpenAt(filepath.Join(dir, "ddns.db"))
	})
	return shared, sharedErr
}

// OpenAt opens or creates the database file at path.
func OpenAt(path string) (*Store, error) {
	database, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	err = database.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(JournalBucket)
		return err
	})
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return &Store{bolt: database}, nil
}

func (s *Store) Close() error {
	return s.bolt.Close()
}

// Append stores value under the bucket's next sequence number and returns it.
func (s *Store) Append(bucket, value []byte) (uint64, error) {
	var seq uint64
	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		var err error
		if seq, err = b.NextSequence(); err != nil {
			return err
		}
		return b.Put(SequenceKey(seq), value)
	})
	return seq, err
}

// Last calls fn for up to n values of bucket, newest key first. n <= 0
// means all of them.
func (s *Store) Last(bucket []byte, n int, fn func(key, value []byte) error) error {
	return s.bolt.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		c := b.Cursor()
		seen := 0
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && seen == n {
				break
			}
			if err := fn(k, append([]byte(nil), v...)); err != nil {
				return err
			}
			seen++
		}
		return nil
	})
}

// SequenceKey encodes seq so that keys sort in insertion order.
func SequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
