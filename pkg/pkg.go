//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the plx module embedded at build time.
// It is printed by the CLI version flag and stamped into generated config.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and default config paths.
	Name = "plx"
	// Description is a short summary of the project used in help output.
	Description = "PlexCode tokenizer, parser, and intent resolver"
	// Language is the display name of the source language.
	Language = "PlexCode"
	// Extension is the conventional file extension of PlexCode sources.
	Extension = ".plx"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
