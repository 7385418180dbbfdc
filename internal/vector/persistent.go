package vector

import (
	"context"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

const snapshotName = "index.gob"

// Persistent is the on-disk back-end: the in-memory search core plus a gob
// snapshot in its directory. The snapshot is rewritten on every mutation
// via a temp-file rename, so a crash never leaves a torn file.
type Persistent struct {
	mem  *Memory
	dir  string
	path string
}

func OpenPersistent(dir string, dim int) (*Persistent, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, common.Wrap(common.KindIndexFailure, "create vector dir", err)
	}
	p := &Persistent{
		mem:  NewMemory(dim),
		dir:  dir,
		path: filepath.Join(dir, snapshotName),
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistent) load() error {
	f, err := os.Open(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return common.Wrap(common.KindIndexFailure, "open snapshot", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return common.Wrap(common.KindIndexFailure, "decode snapshot", err)
	}
	for _, e := range entries {
		if err := p.mem.Add(context.Background(), e); err != nil {
			return err
		}
	}
	return nil
}

func (p *Persistent) flush() error {
	p.mem.mu.RLock()
	entries := make([]Entry, 0, len(p.mem.entries))
	for _, e := range p.mem.entries {
		entries = append(entries, e)
	}
	p.mem.mu.RUnlock()

	tmp, err := os.CreateTemp(p.dir, "index-*.tmp")
	if err != nil {
		return common.Wrap(common.KindIndexFailure, "create snapshot temp", err)
	}
	if err := gob.NewEncoder(tmp).Encode(entries); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return common.Wrap(common.KindIndexFailure, "encode snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return common.Wrap(common.KindIndexFailure, "close snapshot temp", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		_ = os.Remove(tmp.Name())
		return common.Wrap(common.KindIndexFailure, "replace snapshot", err)
	}
	return nil
}

func (p *Persistent) Add(ctx context.Context, e Entry) error {
	if err := p.mem.Add(ctx, e); err != nil {
		return err
	}
	return p.flush()
}

func (p *Persistent) Remove(ctx context.Context, id int) error {
	if err := p.mem.Remove(ctx, id); err != nil {
		return err
	}
	return p.flush()
}

func (p *Persistent) Search(ctx context.Context, query []float32, k int, filter map[string]string) ([]Hit, error) {
	return p.mem.Search(ctx, query, k, filter)
}

func (p *Persistent) Count() int { return p.mem.Count() }

func (p *Persistent) Close() error { return p.flush() }
