// Package blob abstracts the photo object store.
package blob

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the capability surface the services need from object storage.
type Store interface {
	// Upload writes data under key and returns a public download URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Remove deletes the given object keys. It attempts every key and
	// returns the combined error of the ones that failed.
	Remove(ctx context.Context, keys []string) error
}

// NewKey builds a collision-resistant object key for an uploaded photo:
// upload timestamp, random suffix and the file's position in its batch.
func NewKey(index int) string {
	rand := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("item-%d-%s-%d.jpg", time.Now().UnixMilli(), rand, index)
}

// KeyFromURL recovers the object key from a public download URL: the last
// path segment, unescaped, query stripped. Returns "" for unparseable input.
func KeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	// EscapedPath keeps %2F intact, so a key containing a slash still comes
	// back whole after the final unescape.
	path := u.EscapedPath()
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	key, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return key
}
