// Package utils provides utility functions for filename sanitization and UUID generation.
//
// Functions:
//   - SanitizeFilename: Returns a safe filename for downloads.
//     Input: string (filename)
//     Output: string (sanitized filename)
//   - GenerateUUID: Returns a new UUID string.
//     Output: string (UUID)
//   - ProposalFilename: Returns the attachment name for a generated proposal.
//     Input: client name, document ID
//     Output: string ("proposta-<client>-<id prefix>.pdf")
package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

func GenerateUUID() string {
	return uuid.New().String()
}

func ProposalFilename(client, id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	parts := []string{"proposta"}
	if name := strings.Trim(SanitizeFilename(strings.TrimSpace(client)), "._"); name != "" {
		parts = append(parts, strings.ToLower(name))
	}
	if id != "" {
		parts = append(parts, id)
	}
	return strings.Join(parts, "-") + ".pdf"
}
