package binds

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var (
	// ErrUnsupportedFormat is returned for bind files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported bind file format")
	// ErrNotBound is returned by Fire when nothing is bound to the key.
	ErrNotBound = errors.New("nothing bound")
	// ErrFireLoop is returned by Fire when the key is already firing further up
	// the call chain, as with a line that fires its own key.
	ErrFireLoop = errors.New("key is already firing")
)

// Binding is one key to console line association.
type Binding struct {
	Key  Key
	Line string
}

// file is the on-disk layout shared by both encodings.
type file struct {
	Binds map[string]string `yaml:"binds" toml:"binds"`
}

// Store holds key bindings. When it has a path, every change is written back.
type Store struct {
	mu    sync.RWMutex
	binds map[Key]string
	path  string
	log   *log.Logger

	// firing holds the keys whose lines are running.
	firing map[Key]bool
}

var _ consoletypes.Binder = (*Store)(nil)

// NewStore returns an empty, unsaved store.
func NewStore() *Store {
	return &Store{
		binds:  make(map[Key]string),
		firing: make(map[Key]bool),
		log:    logger.NewStyledLogger("Binds"),
	}
}

// Load reads bindings from path. A missing file yields an empty store that
// will be created on the first change.
func Load(path string) (*Store, error) {
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	s := NewStore()
	s.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("No bind file yet", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read binds: %w", err)
	}

	var f file
	if err := decode(path, data, &f); err != nil {
		return nil, fmt.Errorf("decode binds %s: %w", path, err)
	}
	for name, line := range f.Binds {
		k, ok := ParseKey(name)
		if !ok {
			s.log.Warn("Skipping binding for unknown key", "key", name)
			continue
		}
		s.binds[k] = line
	}
	return s, nil
}

// Path returns the file the store saves to, or "".
func (s *Store) Path() string { return s.path }

// Bind associates line with the named key. It reports false when the key is
// not recognized.
func (s *Store) Bind(key, line string) bool {
	k, ok := ParseKey(key)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.binds[k] = line
	s.mu.Unlock()

	logger.BindOperation("bind", k.String(), line)
	s.autosave()
	return true
}

// Unbind removes the binding for the named key and reports whether one existed.
func (s *Store) Unbind(key string) bool {
	k, ok := ParseKey(key)
	if !ok {
		return false
	}

	s.mu.Lock()
	_, existed := s.binds[k]
	delete(s.binds, k)
	s.mu.Unlock()

	if existed {
		logger.BindOperation("unbind", k.String(), "")
		s.autosave()
	}
	return existed
}

// Get returns the line bound to the named key.
func (s *Store) Get(key string) (string, bool) {
	k, ok := ParseKey(key)
	if !ok {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.binds[k]
	return line, ok
}

// All returns every binding ordered by key.
func (s *Store) All() []Binding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Binding, 0, len(s.binds))
	for k, line := range s.binds {
		out = append(out, Binding{Key: k, Line: line})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Fire runs the line bound to the named key through runner. A key whose line
// leads back to firing the same key fails with ErrFireLoop instead of recursing.
func (s *Store) Fire(key string, runner consoletypes.LineRunner) (consoletypes.RunCommandResult, error) {
	k, ok := ParseKey(key)
	if !ok {
		return consoletypes.UnknownCommand, fmt.Errorf("%w: unknown key %q", ErrNotBound, key)
	}

	s.mu.Lock()
	line, bound := s.binds[k]
	if !bound {
		s.mu.Unlock()
		return consoletypes.UnknownCommand, fmt.Errorf("%w: %s", ErrNotBound, k)
	}
	if s.firing[k] {
		s.mu.Unlock()
		return consoletypes.InvalidArgs, fmt.Errorf("%w: %s", ErrFireLoop, k)
	}
	s.firing[k] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.firing, k)
		s.mu.Unlock()
	}()
	return runner.RunLine(line), nil
}

// Save writes the bindings to the store's path.
func (s *Store) Save() error {
	if s.path == "" {
		return errors.New("bind store has no path")
	}

	f := file{Binds: make(map[string]string)}
	for _, b := range s.All() {
		f.Binds[b.Key.String()] = b.Line
	}

	data, err := encode(s.path, f)
	if err != nil {
		return fmt.Errorf("encode binds: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bind directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write binds: %w", err)
	}
	return nil
}

func (s *Store) autosave() {
	if s.path == "" {
		return
	}
	if err := s.Save(); err != nil {
		s.log.Warn("Failed to save binds", "path", s.path, "error", err)
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

func decode(path string, data []byte, f *file) error {
	ft, err := formatOf(path)
	if err != nil {
		return err
	}
	if ft == formatTOML {
		_, err = toml.Decode(string(data), f)
		return err
	}
	return yaml.Unmarshal(data, f)
}

func encode(path string, f file) ([]byte, error) {
	ft, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if ft == formatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(f)
}
