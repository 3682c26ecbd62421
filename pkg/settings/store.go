package settings

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/podium/pkg/errors"
)

// DefaultPath returns $XDG_CONFIG_HOME/podium/settings.toml, falling back
// to ~/.config/podium/settings.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "podium", "settings.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidPath, err, "locate home directory")
	}
	return filepath.Join(home, ".config", "podium", "settings.toml"), nil
}

// Store reads and writes one settings file.
type Store struct {
	Path string
}

// NewStore returns a store for path, or for DefaultPath when path is
// empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{Path: path}, nil
}

// Load reads the settings file. Keys missing from the file keep their
// default; a missing file yields Default.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "read %s", s.Path)
	}

	out := Default()
	if err := toml.Unmarshal(data, &out); err != nil {
		return Settings{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse %s", s.Path)
	}
	out.SetDefaults()
	return out, nil
}

// Save writes st, creating the directory if needed.
func (s *Store) Save(st Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "create settings directory")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode settings")
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "write %s", s.Path)
	}
	return nil
}
