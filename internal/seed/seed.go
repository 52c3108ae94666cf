// Package seed loads the bundled assets and first-run content into a fresh deployment.
package seed

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"district/internal/content"
	"district/internal/logger"
	"district/internal/media"
	"district/internal/model"
	"district/internal/service"
)

// MediaIndex maps a base name to the media record that stands for it. Steps receive the
// index built so far and return it extended.
type MediaIndex map[string]model.Media

// Filename returns the stored filename for base, or "" when base was not seeded.
func (idx MediaIndex) Filename(base string) string {
	return idx[base].Filename
}

// Seeder creates media records for the bundled assets and writes first-run globals.
type Seeder struct {
	media     service.MediaService
	globals   service.GlobalService
	sourceDir string
	mapping   media.Mapping
	resolver  media.Resolver
	log       logger.Logger
}

// NewSeeder creates a Seeder reading assets from sourceDir through mapping.
func NewSeeder(mediaSvc service.MediaService, globalSvc service.GlobalService, sourceDir string, mapping media.Mapping, log logger.Logger) *Seeder {
	return &Seeder{
		media:     mediaSvc,
		globals:   globalSvc,
		sourceDir: sourceDir,
		mapping:   mapping,
		resolver:  media.NewMappingResolver(sourceDir, mapping),
		log:       log.With(logger.String("component", "seed")),
	}
}

// Run seeds media, then the globals that reference it, and returns the final index.
func (s *Seeder) Run(ctx context.Context) (MediaIndex, error) {
	steps := []func(context.Context, MediaIndex) (MediaIndex, error){
		s.SeedMedia,
		s.SeedHomePage,
		s.SeedSiteSettings,
	}
	idx := MediaIndex{}
	for _, step := range steps {
		var err error
		if idx, err = step(ctx, idx); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// SeedMedia makes sure every mapped asset has a media record. Existing records are
// reused; assets missing from the source directory are skipped.
func (s *Seeder) SeedMedia(ctx context.Context, idx MediaIndex) (MediaIndex, error) {
	bases := make([]string, 0, len(s.mapping))
	for base := range s.mapping {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		if err := ctx.Err(); err != nil {
			return idx, err
		}
		filename := path.Base(s.mapping[base])

		existing, err := s.media.Lookup(ctx, filename)
		switch {
		case err == nil:
			idx[base] = *existing
			continue
		case !errors.Is(err, service.ErrNotFound):
			return idx, fmt.Errorf("lookup %s: %w", filename, err)
		}

		src, ok := s.resolver.Resolve(base)
		if !ok {
			s.log.Warn("seed_asset_missing", logger.String("base", base), logger.String("source_dir", s.sourceDir))
			continue
		}
		rec, err := s.upload(ctx, src, filename, altText(base))
		if err != nil {
			return idx, err
		}
		s.log.Info("seed_media_created", logger.String("filename", rec.Filename), logger.String("id", rec.ID))
		idx[base] = *rec
	}
	return idx, nil
}

func (s *Seeder) upload(ctx context.Context, src, filename, alt string) (*model.Media, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	rec, err := s.media.Upload(ctx, f, filename, contentType, fi.Size(), alt)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return rec, nil
}

// altText turns "project-riyadh-hq" into "Project riyadh hq".
func altText(base string) string {
	s := strings.ReplaceAll(base, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SeedHomePage writes the first home page when none has been saved yet. Client logos and
// imagery reference the seeded filenames; sections are otherwise left to their defaults.
func (s *Seeder) SeedHomePage(ctx context.Context, idx MediaIndex) (MediaIndex, error) {
	slug := content.HomePage.Slug
	exists, err := s.globals.Exists(ctx, slug)
	if err != nil {
		return idx, fmt.Errorf("check %s: %w", slug, err)
	}
	if exists {
		s.log.Info("seed_global_exists", logger.String("slug", slug))
		return idx, nil
	}

	if _, err := s.globals.Update(ctx, slug, homePage(idx)); err != nil {
		return idx, fmt.Errorf("write %s: %w", slug, err)
	}
	s.log.Info("seed_global_created", logger.String("slug", slug))
	return idx, nil
}

// SeedSiteSettings writes the first site settings when none have been saved yet.
func (s *Seeder) SeedSiteSettings(ctx context.Context, idx MediaIndex) (MediaIndex, error) {
	slug := content.SiteSettings.Slug
	exists, err := s.globals.Exists(ctx, slug)
	if err != nil {
		return idx, fmt.Errorf("check %s: %w", slug, err)
	}
	if exists {
		return idx, nil
	}

	doc := content.Node{
		"header": map[string]any{"logo": ref(idx, "district-logo")},
		"seo":    map[string]any{"ogImage": ref(idx, "hero-lobby")},
	}
	if _, err := s.globals.Update(ctx, slug, doc); err != nil {
		return idx, fmt.Errorf("write %s: %w", slug, err)
	}
	s.log.Info("seed_global_created", logger.String("slug", slug))
	return idx, nil
}

var clients = []struct{ name, base string }{
	{"Amazon", "amazon"},
	{"Aramco", "aramco"},
	{"STC", "stc"},
	{"NEOM", "neom"},
	{"SABIC", "sabic"},
	{"Al Rajhi", "alrajhi"},
	{"Marriott", "marriott"},
	{"Hilton", "hilton"},
}

var projects = []struct{ title, category, base string }{
	{"Riyadh HQ", "Corporate", "project-riyadh-hq"},
	{"Jeddah Lounge", "Hospitality", "project-jeddah-lounge"},
	{"Diriyah Villa", "Residential", "project-diriyah-villa"},
	{"KAFD Reception", "Corporate", "project-kafd-reception"},
}

func homePage(idx MediaIndex) content.Node {
	clientItems := make([]any, 0, len(clients))
	for _, c := range clients {
		if idx.Filename(c.base) == "" {
			continue
		}
		clientItems = append(clientItems, map[string]any{"name": c.name, "logo": idx.Filename(c.base)})
	}
	projectItems := make([]any, 0, len(projects))
	for _, p := range projects {
		if idx.Filename(p.base) == "" {
			continue
		}
		projectItems = append(projectItems, map[string]any{
			"title":    p.title,
			"category": p.category,
			"image":    idx.Filename(p.base),
		})
	}

	return content.Node{
		"heroSection": map[string]any{
			"headline":        "Interiors & Flowers",
			"backgroundImage": ref(idx, "hero-lobby"),
		},
		"aboutSection": map[string]any{
			"image": ref(idx, "about-studio"),
		},
		"projectsSection": map[string]any{
			"projects": projectItems,
		},
		"clientsSection": map[string]any{
			"clients": clientItems,
		},
	}
}

// ref is the stored filename for base, or nil so the field falls back to its default.
func ref(idx MediaIndex, base string) any {
	if fn := idx.Filename(base); fn != "" {
		return fn
	}
	return nil
}
