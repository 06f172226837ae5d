// Package journal keeps a local history of provisioning runs. Shared
// secrets are never recorded.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dario.lol/ddns/internal/db"
	"dario.lol/ddns/internal/provision"
)

type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
)

type Entry struct {
	Seq        uint64        `json:"-"`
	Time       time.Time     `json:"time"`
	Stack      string        `json:"stack"`
	Table      string        `json:"table,omitempty"`
	Hostname   string        `json:"hostname"`
	ZoneName   string        `json:"zone_name"`
	ZoneID     string        `json:"zone_id,omitempty"`
	TTL        int           `json:"ttl"`
	Outcome    Outcome       `json:"outcome"`
	FailedStep string        `json:"failed_step,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// FromRun builds the journal entry for one workflow run.
func FromRun(in provision.Input, conf *provision.Confirmation, runErr error, took time.Duration) Entry {
	e := Entry{
		Time:     time.Now().UTC(),
		Stack:    in.StackName,
		Hostname: in.Hostname,
		ZoneName: in.ZoneName,
		TTL:      in.TTL,
		Duration: took,
		Outcome:  Succeeded,
	}
	if conf != nil {
		e.Table = conf.Table.PhysicalID
		e.ZoneID = conf.Zone.ResolvedID
	}
	if runErr != nil {
		e.Outcome = Failed
		e.Error = runErr.Error()
		var stepErr *provision.StepError
		if errors.As(runErr, &stepErr) {
			e.FailedStep = stepErr.Stage.Step()
		}
	}
	return e
}

type Journal struct {
	store *db.Store
}

func New(store *db.Store) *Journal {
	return &Journal{store: store}
}

func (j *Journal) Append(e Entry) (uint64, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("encoding journal entry: %w", err)
	}
	return j.store.Append(db.JournalBucket, raw)
}

// Recent returns up to limit entries, newest first. Entries that fail to
// decode are skipped.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	err := j.store.Last(db.JournalBucket, limit, func(key, value []byte) error {
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			return nil
		}
		if len(key) == 8 {
			e.Seq = binary.BigEndian.Uint64(key)
		}
		entries = append(entries, e)
		return nil
	})
	return entries, err
}
