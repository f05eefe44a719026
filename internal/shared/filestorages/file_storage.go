package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidKey        = errors.New("invalid file key")
	ErrInvalidRootDir    = errors.New("invalid root directory")
)

// CompressedExtension marks files that Open decompresses transparently.
const CompressedExtension = ".gz"

type PutResult struct {
	FileKey string
}

type PutOptions struct {
	AllowOverwrite bool
}

// Entry is one child of a listed directory.
type Entry struct {
	Name  string
	Key   string
	IsDir bool
}

// FileStorage gives keyed access to a directory tree: the load test results
// that are read, and the report directory that is written.
// Keys are slash separated and relative to the storage root.
//
//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error)
	// Get returns the raw bytes of the file.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Open returns the file content, gunzipped when the key ends in ".gz".
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the children of a directory sorted by name. The empty key lists the root.
	List(ctx context.Context, dir string) ([]Entry, error)
	Root() string
}

type fileStorage struct {
	dir string
}

func NewFileStorage(rootDir string) (FileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: root directory cannot be empty", ErrInvalidRootDir)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve absolute path: %w", ErrInvalidRootDir, err)
	}

	return &fileStorage{dir: absRootDir}, nil
}

func (s *fileStorage) Root() string {
	return s.dir
}

func (s *fileStorage) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error) {
	if err := s.validateKey(key); err != nil {
		return nil, err
	}
	finalPath := filepath.Join(s.dir, filepath.Clean(key))

	// Write to a temp file first to avoid partial files.
	tmpPath, err := s.writeTemp(ctx, filepath.Dir(finalPath), r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if opts.AllowOverwrite {
		// Atomic replace (POSIX)
		if err := os.Rename(tmpPath, finalPath); err != nil {
			return nil, err
		}
		return &PutResult{FileKey: key}, nil
	}

	// Atomic publish-if-not-exists
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrFileAlreadyExists
		}
		return nil, err
	}
	return &PutResult{FileKey: key}, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.validateKey(key); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	return file, nil
}

func (s *fileStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(key), CompressedExtension) {
		return file, nil
	}

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open gzip stream %q: %w", key, err)
	}
	return &gzipReadCloser{Reader: gzReader, file: file}, nil
}

func (s *fileStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	fullPath := s.dir
	if dir != "" {
		if err := s.validateKey(dir); err != nil {
			return nil, err
		}
		fullPath = filepath.Join(s.dir, filepath.Clean(dir))
	}

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := de.Name()
		if dir != "" {
			key = filepath.ToSlash(filepath.Join(filepath.Clean(dir), de.Name()))
		}
		entries = append(entries, Entry{Name: de.Name(), Key: key, IsDir: de.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *fileStorage) validateKey(key string) error {
	if key == "" || filepath.IsAbs(key) {
		return ErrInvalidKey
	}
	cleanPath := filepath.Clean(key)
	if cleanPath == ".." || cleanPath == "." || strings.HasPrefix(cleanPath, "..") {
		return ErrInvalidKey
	}
	// Ensure the resolved path stays within the root directory
	rel, err := filepath.Rel(s.dir, filepath.Join(s.dir, cleanPath))
	if err != nil || strings.HasPrefix(rel, "..") {
		return ErrInvalidKey
	}
	return nil
}

func (s *fileStorage) writeTemp(ctx context.Context, dir string, r io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		if ctx.Err() != nil {
			return fail(ctx.Err())
		}
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	file io.Closer
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	fileErr := g.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}
