package cudahist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const runPrefix = "run/"

var ErrRunNotFound = errors.New("run not found")

// Archive is a leveldb store of named benchmark runs.
type Archive struct {
	db *leveldb.DB
}

// archivedRun is the stored form of a Dataset.
type archivedRun struct {
	Times    []float64 `json:"times"`
	Coins    []int     `json:"coins"`
	Dropped  int       `json:"dropped"`
	Imported time.Time `json:"imported"`
}

// RunInfo describes an archived run.
type RunInfo struct {
	Name     string
	Runs     int
	Imported time.Time
}

// OpenArchive opens or creates the archive database in dir.
func OpenArchive(dir string) (*Archive, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("can't open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func runKey(name string) []byte {
	return []byte(runPrefix + name)
}

// Put stores ds under its name, replacing any previous run with that name.
func (a *Archive) Put(ds *Dataset, at time.Time) error {
	if ds.Name == "" {
		return errors.New("can't archive unnamed run")
	}
	enc, err := json.Marshal(archivedRun{
		Times:    ds.Times,
		Coins:    ds.Coins,
		Dropped:  ds.Dropped,
		Imported: at.UTC(),
	})
	if err != nil {
		return err
	}
	return a.db.Put(runKey(ds.Name), enc, &opt.WriteOptions{Sync: true})
}

// Get loads the named run.
func (a *Archive) Get(name string) (*Dataset, error) {
	enc, err := a.db.Get(runKey(name), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, name)
	} else if err != nil {
		return nil, err
	}
	var r archivedRun
	if err := json.Unmarshal(enc, &r); err != nil {
		return nil, fmt.Errorf("run %q: %v", name, err)
	}
	if len(r.Times) != len(r.Coins) {
		return nil, fmt.Errorf("run %q: %d times but %d coin counts", name, len(r.Times), len(r.Coins))
	}
	return &Dataset{Name: name, Times: r.Times, Coins: r.Coins, Dropped: r.Dropped}, nil
}

// Delete removes the named run.
func (a *Archive) Delete(name string) error {
	ok, err := a.db.Has(runKey(name), nil)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrRunNotFound, name)
	}
	return a.db.Delete(runKey(name), nil)
}

// List returns all archived runs, sorted by name.
func (a *Archive) List() ([]RunInfo, error) {
	var runs []RunInfo
	it := a.db.NewIterator(util.BytesPrefix([]byte(runPrefix)), nil)
	defer it.Release()
	for it.Next() {
		var r archivedRun
		if err := json.Unmarshal(it.Value(), &r); err != nil {
			return nil, fmt.Errorf("run %q: %v", it.Key()[len(runPrefix):], err)
		}
		runs = append(runs, RunInfo{
			Name:     string(it.Key()[len(runPrefix):]),
			Runs:     len(r.Times),
			Imported: r.Imported,
		})
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name < runs[j].Name })
	return runs, nil
}

// All loads every archived run, sorted by name.
func (a *Archive) All() ([]*Dataset, error) {
	infos, err := a.List()
	if err != nil {
		return nil, err
	}
	sets := make([]*Dataset, 0, len(infos))
	for _, info := range infos {
		ds, err := a.Get(info.Name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ds)
	}
	return sets, nil
}
