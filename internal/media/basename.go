package media

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// dedupSuffix matches the "-<digits>" the CMS appends when an upload's filename is taken.
var dedupSuffix = regexp.MustCompile(`-(\d+)$`)

// BaseName strips the extension and any trailing de-duplication suffix:
// "amazon-2.png" and "amazon.png" both yield "amazon".
func BaseName(filename string) string {
	base, _, _ := split(filename)
	return base
}

// split breaks a filename into its base name, numeric suffix and extension.
// A filename without a suffix reports 1, matching the CMS numbering where the first
// upload keeps the plain name and the second becomes "-2".
func split(filename string) (base string, suffix int, ext string) {
	name := filepath.Base(filepath.FromSlash(filename))
	ext = filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	suffix = 1
	if m := dedupSuffix.FindStringSubmatchIndex(stem); m != nil {
		if n, err := strconv.Atoi(stem[m[2]:m[3]]); err == nil {
			suffix = n
		}
		stem = stem[:m[0]]
	}
	return stem, suffix, ext
}

// Variant returns the n-th de-duplicated name of filename by appending "-N" to its stem:
// Variant("amazon.png", 3) is "amazon-3.png" and Variant("2024-10.jpg", 2) is
// "2024-10-2.jpg". n <= 1 yields filename unchanged.
func Variant(filename string, n int) string {
	if n <= 1 {
		return filename
	}
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "-" + strconv.Itoa(n) + ext
}

// ValidFilename reports whether name is a single local path element, the only shape the
// serving directory holds and /media serves.
func ValidFilename(name string) bool {
	return name != "" && filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`)
}
