package airdrop

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// RunRecord is the persisted audit record of one distribution run.
type RunRecord struct {
	ID         string
	Mint       string
	Sender     string
	Recipients int
	Batches    []BatchResult
	Completed  bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// AuditStore keeps an append-only trail of distribution runs in a bbolt
// database, so every batch outcome survives the process.
type AuditStore struct {
	db *bbolt.DB
}

// OpenAuditStore opens or creates the audit database at dbPath.
// The parent directory is created if it does not exist.
func OpenAuditStore(dbPath string) (*AuditStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrAuditStore, err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %w", ErrAuditStore, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrAuditStore, err)
	}

	return &AuditStore{db: db}, nil
}

// Close closes the underlying database.
func (s *AuditStore) Close() error { return s.db.Close() }

// SaveRun persists one run record, keyed by run ID.
func (s *AuditStore) SaveRun(run *RunRecord) error {
	data, err := encodeGob(run)
	if err != nil {
		return fmt.Errorf("%w: encode run: %w", ErrAuditStore, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(run.ID), data)
	})
	if err != nil {
		return fmt.Errorf("%w: save run: %w", ErrAuditStore, err)
	}
	return nil
}

// GetRun loads one run record by ID.
func (s *AuditStore) GetRun(id string) (*RunRecord, error) {
	var run RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id))
		if data == nil {
			return ErrRunNotFound
		}
		return decodeGob(data, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns every recorded run.
func (s *AuditStore) ListRuns() ([]*RunRecord, error) {
	var runs []*RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, data []byte) error {
			var run RunRecord
			if err := decodeGob(data, &run); err != nil {
				return err
			}
			runs = append(runs, &run)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %w", ErrAuditStore, err)
	}
	return runs, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
