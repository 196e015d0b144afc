// internal/license/license.go

// Package license identifies the repository's license so the report can
// carry it as metadata.
package license

import (
	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
)

// minConfidence is the match confidence below which we report nothing
// rather than guess.
const minConfidence = 0.85

// Detect scans dir for license files and returns the SPDX identifier of
// the most confident match, or an empty string when no match clears the
// confidence bar.
func Detect(dir string) string {
	f, err := filer.FromDirectory(dir)
	if err != nil {
		return ""
	}

	matches, err := licensedb.Detect(f)
	if err != nil {
		return ""
	}

	best, bestConf := "", float32(0)
	for id, match := range matches {
		if match.Confidence >= minConfidence && match.Confidence > bestConf {
			best, bestConf = id, match.Confidence
		}
	}
	return best
}
