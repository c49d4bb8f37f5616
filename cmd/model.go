package cmd

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/host"
	"github.com/alexiusacademia/holeframe/internal/settings"
)

// Model selection flags shared by layout and frame
type modelFlags struct {
	path     string
	encoding string
	glob     string
}

func (f *modelFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.path, "model", "m", "", "Model file (JSON) [required]")
	c.Flags().StringVar(&f.encoding, "encoding", "", "Model file encoding (windows-1251, koi8-r, cp866)")
	c.Flags().StringVarP(&f.glob, "glob", "g", "", "Only openings whose id matches the pattern (e.g. \"L2/**\")")
	c.MarkFlagRequired("model")
}

// load reads the model and returns the openings to frame: those passing
// the opening filter, narrowed by --glob.
func (f *modelFlags) load() (*host.Model, []host.Ref, error) {
	m, err := host.LoadModel(f.path, f.encoding)
	if err != nil {
		return nil, nil, err
	}
	refs, err := selectOpenings(m.Selectable(), f.glob)
	if err != nil {
		return nil, nil, err
	}
	return m, refs, nil
}

func selectOpenings(refs []host.Ref, pattern string) ([]host.Ref, error) {
	if pattern == "" {
		return refs, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --glob pattern %q", pattern)
	}
	var out []host.Ref
	for _, r := range refs {
		if ok, _ := doublestar.Match(pattern, string(r)); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// openStore returns the settings store selected by --db / --settings and
// a function releasing it.
func openStore() (settings.Store, func(), error) {
	if settingsDB != "" {
		db, err := settings.OpenSQLite(settingsDB)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}

	dir := settingsDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeConfiguration, err, "locate settings directory")
		}
		dir = filepath.Join(base, "holeframe")
	}
	return settings.FileStore{Dir: dir}, func() {}, nil
}
