package media

import (
	"os"
	"path"
	"path/filepath"
)

// Resolver turns a base name into the path of an existing source file.
type Resolver interface {
	Resolve(baseName string) (string, bool)
}

type mappingResolver struct {
	sourceDir string
	mapping   Mapping
}

// NewMappingResolver resolves base names through mapping, looking first at the mapped
// path under sourceDir and then at the mapped file name directly in sourceDir, for
// deployments where the asset tree was flattened.
func NewMappingResolver(sourceDir string, mapping Mapping) Resolver {
	return &mappingResolver{sourceDir: sourceDir, mapping: mapping}
}

func (r *mappingResolver) Resolve(baseName string) (string, bool) {
	rel, ok := r.mapping[baseName]
	if !ok {
		return "", false
	}
	candidates := []string{
		filepath.Join(r.sourceDir, filepath.FromSlash(rel)),
		filepath.Join(r.sourceDir, path.Base(rel)),
	}
	for _, c := range candidates {
		if isRegularFile(c) {
			return c, true
		}
	}
	return "", false
}

func isRegularFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
