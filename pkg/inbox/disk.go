package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiskSink stores each inquiry as <dir>/<id>.json.
// Files are written to a temporary name and renamed into place, so readers
// never observe a partial document.
type DiskSink struct {
	dir string
}

// NewDiskSink creates dir if needed and returns a DiskSink writing into it.
func NewDiskSink(dir string) (*DiskSink, error) {
	if dir == "" {
		return nil, errors.New("inbox: disk sink needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("inbox: create %s: %w", dir, err)
	}
	return &DiskSink{dir: dir}, nil
}

// Dir returns the directory the sink writes to.
func (s *DiskSink) Dir() string {
	return s.dir
}

// Deliver implements Sink.
func (s *DiskSink) Deliver(ctx context.Context, inq *Inquiry) error {
	if err := validate(inq); err != nil {
		return err
	}
	if strings.ContainsAny(inq.ID, `/\`) || inq.ID == "." || inq.ID == ".." {
		return Permanent(fmt.Errorf("inbox: invalid inquiry id %q", inq.ID))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(inq, "", "  ")
	if err != nil {
		return Permanent(err)
	}

	tmp, err := os.CreateTemp(s.dir, ".inquiry-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(inq.ID)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Get reads one stored inquiry.
func (s *DiskSink) Get(id string) (*Inquiry, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var inq Inquiry
	if err := json.Unmarshal(data, &inq); err != nil {
		return nil, fmt.Errorf("inbox: decode %s: %w", id, err)
	}
	return &inq, nil
}

// List implements Lister. Files that fail to decode are skipped.
func (s *DiskSink) List(ctx context.Context) ([]*Inquiry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]*Inquiry, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		inq, err := s.Get(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, inq)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (s *DiskSink) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
