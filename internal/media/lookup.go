package media

import (
	"strings"

	"district/internal/model"
)

// PickLatest finds the record that stands for filename among records: same base name,
// same extension (case-insensitive), highest de-duplication suffix. The first record
// wins a tie.
func PickLatest(records []model.Media, filename string) (model.Media, bool) {
	if filename == "" {
		return model.Media{}, false
	}
	wantBase, _, wantExt := split(filename)

	var (
		best  model.Media
		bestN int
		found bool
	)
	for _, rec := range records {
		base, n, ext := split(rec.Filename)
		if base != wantBase || !strings.EqualFold(ext, wantExt) {
			continue
		}
		if !found || n > bestN {
			best, bestN, found = rec, n, true
		}
	}
	return best, found
}
