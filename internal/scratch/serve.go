package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sppt/internal/domain"
	"sppt/internal/infra/logging"
)

// ValidateToken rejects anything that is not a bare filename. It never
// touches the filesystem.
func ValidateToken(token string) error {
	if token == "" ||
		strings.Contains(token, "..") ||
		strings.ContainsAny(token, "/\\\x00") {
		return domain.ErrInvalidToken
	}
	return nil
}

// Serve reads the file behind token and schedules its deletion once the read
// has completed. Reads racing the deletion either get the full bytes or
// domain.ErrNotFound.
func (g *Gateway) Serve(token string) (domain.Document, error) {
	if err := ValidateToken(token); err != nil {
		return domain.Document{}, err
	}

	path := filepath.Join(g.dir, token)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || !isRegular(path) {
			return domain.Document{}, domain.ErrNotFound
		}
		return domain.Document{}, fmt.Errorf("read scratch file: %w", err)
	}

	g.scheduleRemoval(token)

	doc := domain.Document{
		Bytes:    data,
		MimeType: domain.MimeFor(token),
		Filename: token,
	}
	if g.obs != nil {
		g.obs.Served(domain.ExtensionFor(doc.MimeType))
	}
	return doc, nil
}

// isRegular reports whether path names a regular file. Directories, such as
// the scratch root itself for ".", are not files a token can refer to.
func isRegular(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// scheduleRemoval arms a detached timer. There is no handle to cancel it, and
// a process exit before it fires leaves the file behind.
func (g *Gateway) scheduleRemoval(token string) {
	// The caller's string may alias a request buffer that is reused once the
	// request completes.
	token = strings.Clone(token)
	time.AfterFunc(g.delay, func() {
		err := g.Remove(token)
		if err != nil {
			logging.Warn("Scratch cleanup failed", "token", token, "error", err)
		} else {
			logging.Debug("Scratch file removed", "token", token)
		}
		if g.obs != nil {
			g.obs.Removed(err)
		}
	})
}
