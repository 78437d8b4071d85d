// Package encoded maintains pre-compressed copies of static files, produced
// lazily on first demand and kept in a cache directory mirroring the source
// tree layout.
package encoded

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cobalt-web/cobalt/codec"
	"github.com/cobalt-web/cobalt/internal/keylock"
)

// suffix separates the original file name from the coding token in artifact
// names, e.g. style.css.cobalt.encoding.gzip
const suffix = ".cobalt.encoding."

var errStale = errors.New("cached artifact is older than its source")

// Resource is an opened file together with the coding it is stored in. An
// empty Token means the plain original. The caller owns File and must close
// it.
type Resource struct {
	File  *os.File
	Token string
	Size  int64
}

// Filter decides whether a source file is worth encoding at all.
type Filter func(name string, info fs.FileInfo) bool

// Manager produces and serves pre-compressed copies of files below a root
// directory. At most one producer runs per (path, coding) pair at a time;
// a request that loses the race is served the original instead of waiting.
type Manager struct {
	root     string
	cache    string
	codecs   codec.Suite
	inFlight *keylock.Set
	pred     Filter
	minSize  int64
	maxSize  int64
}

func NewManager(root, cache string, codecs codec.Suite) *Manager {
	return &Manager{
		root:     root,
		cache:    cache,
		codecs:   codecs,
		inFlight: keylock.NewSet(),
	}
}

// SizeBounds limits encoding to sources of at least min and at most max
// bytes. Zero max lifts the upper bound.
func (m *Manager) SizeBounds(min, max int64) *Manager {
	m.minSize, m.maxSize = min, max
	return m
}

// Filter installs a predicate consulted before encoding a source. Sources
// it rejects are always served plain.
func (m *Manager) Filter(pred Filter) *Manager {
	m.pred = pred
	return m
}

// Get opens the resource stored under name, preferring a cached encoded
// copy whenever one of the codecs matches acceptEncoding. The plain
// original is served whenever encoding is not acceptable, not worth it, or
// currently being produced by somebody else.
func (m *Manager) Get(name, acceptEncoding string) (Resource, error) {
	rel := filepath.Clean("/" + name)
	src := filepath.Join(m.root, rel)

	info, err := os.Stat(src)
	if err != nil {
		return Resource{}, err
	}

	c, ok := m.codecs.Negotiate(acceptEncoding)
	if !ok || !m.worthEncoding(rel, info) {
		return m.plain(src)
	}

	artifact := filepath.Join(m.cache, rel+suffix+c.Token())
	if resource, err := m.cached(artifact, c.Token(), info); err == nil {
		return resource, nil
	}

	if !m.inFlight.TryAcquire(artifact) {
		// somebody is already producing this artifact. Serving the
		// original right away beats waiting for them to finish
		return m.plain(src)
	}
	defer m.inFlight.Release(artifact)

	// the artifact may have been published while we were acquiring the key
	if resource, err := m.cached(artifact, c.Token(), info); err == nil {
		return resource, nil
	}

	if err := m.produce(src, artifact, c); err != nil {
		return Resource{}, err
	}

	return m.cached(artifact, c.Token(), info)
}

func (m *Manager) worthEncoding(name string, info fs.FileInfo) bool {
	if m.pred != nil && !m.pred(name, info) {
		return false
	}

	size := info.Size()

	return size >= m.minSize && (m.maxSize == 0 || size <= m.maxSize)
}

// cached opens an artifact published earlier, rejecting it if the source
// has been modified since it was produced.
func (m *Manager) cached(artifact, token string, src fs.FileInfo) (Resource, error) {
	info, err := os.Stat(artifact)
	if err != nil {
		return Resource{}, err
	}

	if info.ModTime().Before(src.ModTime()) {
		return Resource{}, errStale
	}

	file, err := os.Open(artifact)
	if err != nil {
		return Resource{}, err
	}

	return Resource{File: file, Token: token, Size: info.Size()}, nil
}

func (m *Manager) plain(src string) (Resource, error) {
	file, err := os.Open(src)
	if err != nil {
		return Resource{}, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return Resource{}, err
	}

	return Resource{File: file, Size: info.Size()}, nil
}

// produce pipes src through the codec into a temp file next to the
// artifact, then renames it into place, so readers never observe a
// half-written copy.
func (m *Manager) produce(src, artifact string, c codec.Codec) error {
	if err := os.MkdirAll(filepath.Dir(artifact), 0o750); err != nil {
		return err
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	tmp, err := os.CreateTemp(filepath.Dir(artifact), filepath.Base(artifact)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := c.NewWriter(tmp)
	if _, err = io.Copy(writer, source); err != nil {
		_ = writer.Close()
		_ = tmp.Close()
		return err
	}

	if err = writer.Close(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), artifact)
}
