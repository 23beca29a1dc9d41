package blob

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// PutResult describes a stored object. URL is the externally reachable
// location, Path the backend-relative key.
type PutResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Store is the object-storage collaborator: a single put capability.
// Implementations must tolerate retried puts to the same path
// (last-write-wins).
type Store interface {
	Put(ctx context.Context, objectPath string, data []byte, contentType string) (PutResult, error)
}

// cleanObjectPath normalizes a slash-separated object path and rejects
// anything that would escape the storage root.
func cleanObjectPath(objectPath string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(objectPath, "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return clean, nil
}
