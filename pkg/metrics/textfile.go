package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/common/expfmt"
)

// WriteTextfile gathers the manager's registry and writes the metric
// families in Prometheus text exposition format. The file is written to a
// temporary sibling first and renamed into place so a failed run never
// leaves a partial artifact.
func (m *Manager) WriteTextfile(path string) (err error) {
	if !m.enabled {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("%w: gather: %w", ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if encErr := enc.Encode(mf); encErr != nil {
			err = fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, mf.GetName(), encErr)
			return err
		}
	}

	if closeErr := tmp.Close(); closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrWriteFailed, closeErr)
		return err
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrWriteFailed, renameErr)
	}
	return nil
}
