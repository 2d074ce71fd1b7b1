package models

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Duplicate resolution modes for file creation.
const (
	DuplicateAppendUUID = "APPEND_UUID"
	DuplicateOverwrite  = "OVERWRITE"
)

var dedupSuffix = regexp.MustCompile(`_[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`)

// FileName derives the cross-system name of a file from its preview URL:
// the last path segment without query string or de-duplication UUID suffix.
func FileName(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	name := ""
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	} else {
		name = rawURL[strings.LastIndex(rawURL, "/")+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	if name == "." || name == "/" {
		return ""
	}
	return dedupSuffix.ReplaceAllString(name, "")
}

// File is a stored file, matched across stores by Name.
type File struct {
	ID  string  `json:"id"`
	URL string  `json:"url"`
	Alt *string `json:"alt"`
}

// Name returns the derived cross-system name.
func (f File) Name() string {
	return FileName(f.URL)
}

// FileCreate is the payload for one new file.
type FileCreate struct {
	Filename                string  `json:"filename"`
	OriginalSource          string  `json:"originalSource"`
	Alt                     *string `json:"alt,omitempty"`
	DuplicateResolutionMode string  `json:"duplicateResolutionMode"`
}
