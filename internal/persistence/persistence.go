package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/markusressel/dbw2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSessions = "sessions"

	sessionKeyLayout = "2006-01-02T15:04:05.000000000Z"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Session summarizes a single run of the daemon
type Session struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Ticks                int64 `json:"ticks"`
	EnabledTicks         int64 `json:"enabledTicks"`
	AuthorityTransitions int64 `json:"authorityTransitions"`
	PublishErrors        int64 `json:"publishErrors"`

	PeakThrottle float64 `json:"peakThrottle"`
	PeakBrake    float64 `json:"peakBrake"`
	PeakSteer    float64 `json:"peakSteer"`
}

// Key is the database key of the session, ordered by start time
func (s Session) Key() string {
	return s.Start.UTC().Format(sessionKeyLayout)
}

type Persistence interface {
	Init() error

	SaveSession(session Session) error
	LoadSessions() ([]Session, error)
	DeleteSessions() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		return os.MkdirAll(parentDir, 0755)
	}
	if err != nil {
		return fmt.Errorf("db directory %s: %w", parentDir, err)
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.dbPath, err)
	}
	return db, nil
}

// SaveSession saves the given session summary, replacing one with the same start time
func (p persistence) SaveSession(session Session) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSessions))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(session.Key()), data)
	})
}

// LoadSessions returns all saved sessions, oldest first
func (p persistence) LoadSessions() ([]Session, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var sessions []Session
	var corrupt [][]byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSessions))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var session Session
			if err := json.Unmarshal(v, &session); err != nil {
				ui.Warning("Unable to unmarshal saved session %s: %v", k, err)
				corrupt = append(corrupt, append([]byte(nil), k...))
				return nil
			}
			sessions = append(sessions, session)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if len(corrupt) > 0 {
		// if we cannot read the saved data, delete it
		err = db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(BucketSessions))
			for _, k := range corrupt {
				if err := b.Delete(k); err != nil {
					ui.Error("Unable to delete corrupt session %s: %v", k, err)
				}
			}
			return nil
		})
	}

	return sessions, err
}

// DeleteSessions removes all saved sessions
func (p persistence) DeleteSessions() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketSessions)) == nil {
			// nothing saved yet
			return nil
		}
		return tx.DeleteBucket([]byte(BucketSessions))
	})
}
