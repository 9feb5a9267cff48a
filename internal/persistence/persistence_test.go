package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func createPersistence(t *testing.T) (Persistence, string) {
	dbPath := filepath.Join(t.TempDir(), "db", "test.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	return p, dbPath
}

func createSession(start time.Time) Session {
	return Session{
		Start:                start,
		End:                  start.Add(time.Minute),
		Ticks:                3000,
		EnabledTicks:         2500,
		AuthorityTransitions: 2,
		PublishErrors:        1,
		PeakThrottle:         0.8,
		PeakBrake:            700,
		PeakSteer:            1.2,
	}
}

func TestPersistence_InitCreatesDirectory(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "a", "b", "test.db")

	// WHEN
	err := NewPersistence(dbPath).Init()

	// THEN
	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(dbPath))
}

func TestPersistence_InitReturnsStatError(t *testing.T) {
	// GIVEN
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("not a directory"), 0600))
	dbPath := filepath.Join(file, "sub", "test.db")

	// WHEN
	err := NewPersistence(dbPath).Init()

	// THEN
	assert.Error(t, err)
}

func TestPersistence_LoadSessionsEmpty(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// WHEN
	sessions, err := p.LoadSessions()

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestPersistence_SaveAndLoadSessions(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	later := createSession(start.Add(time.Hour))
	earlier := createSession(start)

	// WHEN
	require.NoError(t, p.SaveSession(later))
	require.NoError(t, p.SaveSession(earlier))
	sessions, err := p.LoadSessions()

	// THEN
	assert.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, earlier.Start.Equal(sessions[0].Start))
	assert.True(t, later.Start.Equal(sessions[1].Start))
	assert.Equal(t, int64(2500), sessions[0].EnabledTicks)
	assert.Equal(t, 700.0, sessions[0].PeakBrake)
}

func TestPersistence_SaveSessionReplacesSameStart(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	session := createSession(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, p.SaveSession(session))

	// WHEN
	session.Ticks = 42
	require.NoError(t, p.SaveSession(session))
	sessions, err := p.LoadSessions()

	// THEN
	assert.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(42), sessions[0].Ticks)
}

func TestPersistence_DeleteSessions(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	require.NoError(t, p.SaveSession(createSession(time.Now())))

	// WHEN
	err := p.DeleteSessions()
	assert.NoError(t, err)

	// THEN
	sessions, err := p.LoadSessions()
	assert.NoError(t, err)
	assert.Empty(t, sessions)

	// deleting again is fine
	assert.NoError(t, p.DeleteSessions())
}

func TestPersistence_CorruptSessionIsRemoved(t *testing.T) {
	// GIVEN
	p, dbPath := createPersistence(t)
	valid := createSession(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, p.SaveSession(valid))

	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketSessions)).Put([]byte("garbage"), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// WHEN
	sessions, err := p.LoadSessions()

	// THEN
	assert.NoError(t, err)
	assert.Len(t, sessions, 1)

	db, err = bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()
	_ = db.View(func(tx *bolt.Tx) error {
		assert.Nil(t, tx.Bucket([]byte(BucketSessions)).Get([]byte("garbage")))
		return nil
	})
}

func TestSessionKeyIsSortable(t *testing.T) {
	// GIVEN
	a := Session{Start: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := Session{Start: time.Date(2024, 5, 1, 12, 0, 0, 500, time.UTC)}

	// THEN
	assert.Less(t, a.Key(), b.Key())
	assert.Equal(t, "2024-05-01T12:00:00.000000000Z", a.Key())
}
