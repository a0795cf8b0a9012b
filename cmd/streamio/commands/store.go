package commands

import (
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/haivivi/streamio/pkg/spool"
)

// defaultStorePath is where dir and badger stores live unless --path
// says otherwise.
const defaultStorePath = ".streamio"

// memoryStore is shared so record and replay see the same blobs inside
// one process. Mostly useful for tests.
var memoryStore = spool.NewMemory()

// openStore builds the spool store named by the --store flag. The
// returned closer is nil for stores that need no teardown.
func openStore(name, path string) (spool.Store, func() error, error) {
	if path == "" {
		path = defaultStorePath
	}
	switch name {
	case "", "dir":
		st, err := spool.NewDir(path)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "badger":
		opts := badger.DefaultOptions(path).WithLogger(badgerSlog{})
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store at %s: %w", path, err)
		}
		return spool.NewBadger(db), db.Close, nil
	case "memory":
		return memoryStore, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want dir, badger or memory)", name)
	}
}

// openSpooler builds a spooler over the flag-selected store.
func openSpooler(store, path string, chunkSize int) (*spool.Spooler, func() error, error) {
	st, closer, err := openStore(store, path)
	if err != nil {
		return nil, nil, err
	}
	opts := []spool.Option{spool.WithLogger(slog.Default())}
	if chunkSize > 0 {
		opts = append(opts, spool.WithChunkSize(chunkSize))
	}
	return spool.New(st, opts...), closer, nil
}

// badgerSlog routes badger's logging through slog, keeping its chatty
// info output at debug level.
type badgerSlog struct{}

func (badgerSlog) Errorf(f string, v ...interface{})   { slog.Error(fmt.Sprintf("badger: "+f, v...)) }
func (badgerSlog) Warningf(f string, v ...interface{}) { slog.Warn(fmt.Sprintf("badger: "+f, v...)) }
func (badgerSlog) Infof(f string, v ...interface{})    { slog.Debug(fmt.Sprintf("badger: "+f, v...)) }
func (badgerSlog) Debugf(f string, v ...interface{})   { slog.Debug(fmt.Sprintf("badger: "+f, v...)) }
