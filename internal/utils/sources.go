package utils

import (
	"net/url"
	"strings"
)

// SourceKind classifies where an image reference points.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceStdin
	SourceRemote
)

// ClassifySource splits an image reference into its kind and the location to
// open: "-" is stdin, http(s) URLs are remote, file:// URLs and anything else
// are local paths.
func ClassifySource(ref string) (SourceKind, string) {
	ref = strings.TrimSpace(ref)
	if ref == "-" {
		return SourceStdin, ""
	}

	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceRemote, ref
	case strings.HasPrefix(lower, "file://"):
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			return SourceFile, u.Path
		}
		return SourceFile, ref[len("file://"):]
	}
	return SourceFile, ref
}
