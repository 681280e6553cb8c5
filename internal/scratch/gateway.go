// Package scratch hands renderings from the render endpoint to the download
// endpoint through one flat directory. Files are written once, served until
// their deletion timer fires, and never listed.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"sppt/internal/domain"
	"sppt/internal/infra/logging"
)

// DefaultCleanupDelay is how long a served file survives its first read.
const DefaultCleanupDelay = 5 * time.Second

// Hint names a persisted file; see domain.Model.FileStem.
type Hint struct {
	Year     string
	ParcelID string
}

// HintFor derives the filename hint from a model.
func HintFor(m domain.Model) Hint {
	return Hint{Year: m.TaxYear, ParcelID: m.ParcelID}
}

// Observer receives lifecycle events, typically for metrics. Any method may
// be called from the deletion timer goroutine.
type Observer interface {
	Persisted(ext string, size int)
	Served(ext string)
	Removed(err error)
}

// Gateway owns the scratch directory.
type Gateway struct {
	dir   string
	delay time.Duration
	now   func() time.Time
	obs   Observer

	last atomic.Int64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCleanupDelay sets the delay between a completed read and deletion.
func WithCleanupDelay(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.delay = d
		}
	}
}

// WithClock replaces time.Now for the filename suffix.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithObserver attaches lifecycle callbacks.
func WithObserver(o Observer) Option {
	return func(g *Gateway) { g.obs = o }
}

// New returns a gateway rooted at dir. The directory is created lazily.
func New(dir string, opts ...Option) *Gateway {
	g := &Gateway{
		dir:   dir,
		delay: DefaultCleanupDelay,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dir returns the scratch directory.
func (g *Gateway) Dir() string { return g.dir }

// CleanupDelay returns the configured deletion delay.
func (g *Gateway) CleanupDelay() time.Duration { return g.delay }

// nextSuffix returns the current Unix millisecond, bumped so that no two calls
// in this process ever return the same value.
func (g *Gateway) nextSuffix() int64 {
	for {
		now := g.now().UnixMilli()
		last := g.last.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Persist writes doc under a fresh name and returns that name as the
// retrieval token. Existing files are never overwritten.
func (g *Gateway) Persist(doc domain.Document, hint Hint) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}

	stem := domain.FileStem(hint.Year, hint.ParcelID)
	ext := doc.Extension()

	for attempt := 0; attempt < 8; attempt++ {
		token := stem + "-" + strconv.FormatInt(g.nextSuffix(), 10) + "." + ext
		f, err := os.OpenFile(filepath.Join(g.dir, token), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			// Another process used the same millisecond.
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create scratch file: %w", err)
		}
		if _, err := f.Write(doc.Bytes); err != nil {
			f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write scratch file: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("close scratch file: %w", err)
		}

		logging.Info("Scratch file written", "token", token, "bytes", len(doc.Bytes))
		if g.obs != nil {
			g.obs.Persisted(ext, len(doc.Bytes))
		}
		return token, nil
	}
	return "", fmt.Errorf("create scratch file: no free name for %s", stem)
}

// Remove deletes the file behind token. A file that is already gone is not
// an error.
func (g *Gateway) Remove(token string) error {
	if err := ValidateToken(token); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(g.dir, token))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrCleanup, err)
}
