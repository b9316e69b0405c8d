package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/logging"
)

// FSWriterOptions holds configuration overrides passed to NewFSWriter().
type FSWriterOptions struct {
	// Logger receives per-artifact write diagnostics.
	Logger logging.Logger
}

// FSWriter persists run results as plain-text artifacts in a directory. It is
// the durable core.ResultWriter used by batch runs; analysis scripts consume
// the files directly.
//
// Each run produces ProfileFilename and SpectrumFilename inside the output
// directory. Re-running into the same directory overwrites previous
// artifacts.
type FSWriter struct {
	dir    string
	logger logging.Logger
}

// NewFSWriter constructs a writer targeting the given output directory. The
// directory is created lazily on the first write.
func NewFSWriter(dir string, optFns ...func(o *FSWriterOptions)) *FSWriter {
	opts := FSWriterOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &FSWriter{
		dir:    dir,
		logger: core.EnsureLogger(opts.Logger),
	}
}

// Write renders and persists both artifacts for the result. The first failed
// artifact aborts the write; the caller decides whether the failure is fatal
// for the run.
func (w *FSWriter) Write(result *core.RunResult) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := w.writeFile(ProfileFilename, RenderProfile(result)); err != nil {
		return fmt.Errorf("write energy deposition profile: %w", err)
	}

	if err := w.writeFile(SpectrumFilename, RenderSpectrum(result)); err != nil {
		return fmt.Errorf("write neutron spectrum: %w", err)
	}

	return nil
}

func (w *FSWriter) writeFile(name string, data []byte) error {
	start := time.Now()
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(data); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	w.logger.Debug("artifact written", "path", path, "bytes", len(data), "duration", time.Since(start))

	return nil
}

// Dir returns the output directory this writer targets.
func (w *FSWriter) Dir() string { return w.dir }
