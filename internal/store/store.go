// Package store keeps uploaded files and their rendered outputs in a local
// bbolt database, keyed by file id.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

var (
	bucketFiles   = []byte("files")
	bucketOutputs = []byte("outputs")
)

// Kind distinguishes the converted document from its split.
type Kind string

const (
	KindOriginal Kind = "original"
	KindSplit    Kind = "split"
)

// File describes one uploaded source file.
type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SourcePath string    `json:"source_path"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Output is a rendered conversion or split.
type Output struct {
	Format     string    `json:"format"`
	Content    []byte    `json:"content"`
	ChunkCount int       `json:"chunk_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store struct {
	db *bbolt.DB
}

// Open creates the database file and its buckets if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketFiles, bucketOutputs} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewFile records an upload under a fresh id.
func (s *Store) NewFile(name, sourcePath string, size int64) (File, error) {
	f := File{
		ID:         uuid.NewString(),
		Name:       name,
		SourcePath: sourcePath,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.PutFile(f); err != nil {
		return File{}, err
	}
	return f, nil
}

func (s *Store) PutFile(f File) error {
	if f.ID == "" {
		return errors.New("file id is required")
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFiles).Put([]byte(f.ID), data)
	})
}

func (s *Store) GetFile(id string) (File, error) {
	var f File
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFiles).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &f)
	})
	return f, err
}

// ListFiles returns every file, most recent upload first.
func (s *Store) ListFiles() ([]File, error) {
	var files []File
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFiles).ForEach(func(_, v []byte) error {
			var f File
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			files = append(files, f)
			return nil
		})
	})
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, err
}

func outputKey(id string, kind Kind) []byte {
	return []byte(id + "/" + string(kind))
}

// PutOutput stores out for the file. The file must exist.
func (s *Store) PutOutput(id string, kind Kind, out Output) error {
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketFiles).Get([]byte(id)) == nil {
			return fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return tx.Bucket(bucketOutputs).Put(outputKey(id, kind), data)
	})
}

func (s *Store) GetOutput(id string, kind Kind) (Output, error) {
	var out Output
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketOutputs).Get(outputKey(id, kind))
		if data == nil {
			return fmt.Errorf("%s output for %s: %w", kind, id, ErrNotFound)
		}
		return json.Unmarshal(data, &out)
	})
	return out, err
}

// Delete removes a file and all of its outputs.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketFiles).Get([]byte(id)) == nil {
			return fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		if err := tx.Bucket(bucketFiles).Delete([]byte(id)); err != nil {
			return err
		}
		for _, kind := range []Kind{KindOriginal, KindSplit} {
			if err := tx.Bucket(bucketOutputs).Delete(outputKey(id, kind)); err != nil {
				return err
			}
		}
		return nil
	})
}
