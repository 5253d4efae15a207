package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bucketlist/internal/localdb"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/models"
	"github.com/dmitrijs2005/bucketlist/internal/persistence"
	"github.com/dmitrijs2005/bucketlist/internal/store"
)

// syncBuffer guards writes made by the background saver.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), localdb.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func runScript(t *testing.T, gw store.Gateway, script ...string) (string, error) {
	t.Helper()
	out := &syncBuffer{}
	st := store.New(gw)
	a := newApp(st, strings.NewReader(strings.Join(script, "\n")+"\n"), out, logging.Discard())

	err := a.Run(context.Background())
	return out.String(), err
}

func TestApp_Session(t *testing.T) {
	db := openDB(t)
	gw := persistence.NewSQLiteGateway(db)

	out, err := runScript(t, gw,
		"add Tokyo",
		"add",
		"   ",
		"add",
		"Lima",
		"list",
		"toggle 1",
		"delete 2",
		"toggle nope",
		"foo",
		"quit",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "My Travel Bucket List")
	assert.Contains(t, out, emptyListMessage)
	assert.Contains(t, out, "Where to next?")
	assert.Contains(t, out, "Error: Please enter a destination name")
	assert.Contains(t, out, "[Not Visited] Lima")
	assert.Contains(t, out, "[Visited]     Tokyo")
	assert.Contains(t, out, `No destination "nope"`)
	assert.Contains(t, out, "Unknown command: foo")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))

	saved, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Tokyo", saved[0].Name)
	assert.True(t, saved[0].Visited)
}

func TestApp_ReferencesByID(t *testing.T) {
	db := openDB(t)
	gw := persistence.NewSQLiteGateway(db)
	require.NoError(t, gw.Save(context.Background(), []models.Destination{
		{ID: "p1", Name: "Paris"},
		{ID: "r2", Name: "Rome"},
	}))

	_, err := runScript(t, gw, "toggle r2", "rm p1", "exit")
	require.NoError(t, err)

	saved, err := gw.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Destination{{ID: "r2", Name: "Rome", Visited: true}}, saved)
}

func TestApp_LoadFailureShowsNoticeAndContinues(t *testing.T) {
	db := openDB(t)
	_, err := db.Exec(`INSERT INTO metadata (key, value) VALUES (?, ?)`, persistence.StorageKey, []byte("{broken"))
	require.NoError(t, err)
	gw := persistence.NewSQLiteGateway(db)

	out, err := runScript(t, gw, "add Oslo", "quit")
	require.NoError(t, err)

	assert.Contains(t, out, "Error: Failed to load your destinations")
	assert.Contains(t, out, "Oslo")

	saved, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Oslo", saved[0].Name)
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (failingRepo) Set(context.Context, string, []byte) error   { return errors.New("disk full") }
func (failingRepo) Delete(context.Context, string) error        { return nil }

func TestApp_SaveFailureShowsNotice(t *testing.T) {
	gw := persistence.NewGateway(failingRepo{})

	out, err := runScript(t, gw, "add Paris", "quit")
	require.ErrorIs(t, err, models.ErrStorageWrite)

	assert.Contains(t, out, "Error: Failed to save your destinations")
	assert.Contains(t, out, "Paris", "in-memory list is still shown")
}

func TestApp_EndOfInputClosesCleanly(t *testing.T) {
	db := openDB(t)
	gw := persistence.NewSQLiteGateway(db)

	out, err := runScript(t, gw, "add Quito")
	require.NoError(t, err)
	assert.NotContains(t, out, "Bye!")

	saved, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestApp_CancelledContextStillFlushes(t *testing.T) {
	db := openDB(t)
	gw := persistence.NewSQLiteGateway(db)
	st := store.New(gw, store.WithSaveDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	out := &syncBuffer{}
	a := newApp(st, pr, out, logging.Discard())
	st.OnChange(func(list []models.Destination) {
		if len(list) > 0 {
			cancel()
		}
	})

	go func() { _, _ = pw.Write([]byte("add Cusco\n")) }()

	require.NoError(t, a.Run(ctx))

	saved, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Cusco", saved[0].Name)
}
