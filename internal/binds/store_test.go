package binds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/pkg/consoletypes"
)

type recordingRunner struct {
	lines []string
}

func (r *recordingRunner) RunLine(line string) consoletypes.RunCommandResult {
	r.lines = append(r.lines, line)
	return consoletypes.CommandSuccess
}

func TestStore_Bind(t *testing.T) {
	s := NewStore()

	assert.True(t, s.Bind("f1", "say hi"))
	assert.False(t, s.Bind("NotAKey", "say hi"))

	line, ok := s.Get("F1")
	require.True(t, ok)
	assert.Equal(t, "say hi", line)

	assert.True(t, s.Bind("F1", "clear"), "rebinding replaces the line")
	line, _ = s.Get("F1")
	assert.Equal(t, "clear", line)
}

func TestStore_Unbind(t *testing.T) {
	s := NewStore()
	s.Bind("A", "help")

	assert.True(t, s.Unbind("a"))
	assert.False(t, s.Unbind("A"))
	assert.False(t, s.Unbind("NotAKey"))

	_, ok := s.Get("A")
	assert.False(t, ok)
}

func TestStore_AllSortedByKey(t *testing.T) {
	s := NewStore()
	s.Bind("Space", "jump")
	s.Bind("B", "buy")
	s.Bind("F2", "quicksave")

	var keys []string
	for _, b := range s.All() {
		keys = append(keys, b.Key.String())
	}
	assert.Equal(t, []string{"B", "F2", "Space"}, keys)
}

func TestStore_Fire(t *testing.T) {
	s := NewStore()
	s.Bind("F5", `say "quick save"`)
	runner := &recordingRunner{}

	res, err := s.Fire("f5", runner)
	require.NoError(t, err)
	assert.Equal(t, consoletypes.CommandSuccess, res)
	assert.Equal(t, []string{`say "quick save"`}, runner.lines)

	_, err = s.Fire("F6", runner)
	assert.ErrorIs(t, err, ErrNotBound)
	_, err = s.Fire("NotAKey", runner)
	assert.ErrorIs(t, err, ErrNotBound)
	assert.Len(t, runner.lines, 1)
}

// firingRunner fires the key named by the line back into the store.
type firingRunner struct {
	store *Store
	lines []string
	errs  []error
}

func (r *firingRunner) RunLine(line string) consoletypes.RunCommandResult {
	r.lines = append(r.lines, line)
	res, err := r.store.Fire(line, r)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	return res
}

func TestStore_FireLoop(t *testing.T) {
	tests := []struct {
		name      string
		binds     map[string]string
		fire      string
		wantLines []string
	}{
		{
			name:      "self",
			binds:     map[string]string{"F1": "F1"},
			fire:      "F1",
			wantLines: []string{"F1"},
		},
		{
			name:      "two key cycle",
			binds:     map[string]string{"F1": "F2", "F2": "F1"},
			fire:      "F1",
			wantLines: []string{"F2", "F1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			for k, line := range tt.binds {
				require.True(t, s.Bind(k, line))
			}
			runner := &firingRunner{store: s}

			res, err := s.Fire(tt.fire, runner)

			require.NoError(t, err)
			assert.Equal(t, consoletypes.InvalidArgs, res)
			assert.Equal(t, tt.wantLines, runner.lines)
			require.Len(t, runner.errs, 1)
			assert.ErrorIs(t, runner.errs[0], ErrFireLoop)

			// the guard is released once the outer fire returns
			runner.errs = nil
			_, err = s.Fire(tt.fire, runner)
			require.NoError(t, err)
			assert.Len(t, runner.errs, 1)
		})
	}
}

func TestStore_Persistence(t *testing.T) {
	for _, name := range []string{"binds.yaml", "binds.yml", "binds.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg", name)

			s, err := Load(path)
			require.NoError(t, err)
			assert.Empty(t, s.All())
			assert.Equal(t, path, s.Path())

			require.True(t, s.Bind("F1", `say "hello world"`))
			require.True(t, s.Bind("Space", "jump"))
			require.True(t, s.Unbind("Space"))

			_, err = os.Stat(path)
			require.NoError(t, err, "changes are saved immediately")

			reloaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, s.All(), reloaded.All())
		})
	}
}

func TestLoad_SkipsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("binds:\n  f1: help\n  Bogus: quit\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.All(), 1)
	assert.Equal(t, "F1", s.All()[0].Key.String())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "binds.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("binds = [ not toml"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestStore_SaveWithoutPath(t *testing.T) {
	assert.Error(t, NewStore().Save())
}
