package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"district/internal/content"
	"district/internal/logger"
	"district/internal/media"
	"district/internal/model"
	"district/internal/service"
	svcMocks "district/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, dir, rel, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestAltText(t *testing.T) {
	assert.Equal(t, "Project riyadh hq", altText("project-riyadh-hq"))
	assert.Equal(t, "Amazon", altText("amazon"))
	assert.Equal(t, "", altText(""))
}

func TestSeeder_SeedMedia(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeAsset(t, dir, "logos/amazon.png", "png-bytes")
	mapping := media.Mapping{
		"amazon":     "logos/amazon.png",
		"stc":        "logos/stc.png",
		"hero-lobby": "hero/hero-lobby.jpg",
	}

	mSvc := new(svcMocks.MockMediaService)
	mSvc.On("Lookup", ctx, "amazon.png").Return(nil, service.ErrNotFound)
	mSvc.On("Lookup", ctx, "hero-lobby.jpg").Return(&model.Media{ID: "h1", Filename: "hero-lobby-2.jpg"}, nil)
	mSvc.On("Lookup", ctx, "stc.png").Return(nil, service.ErrNotFound)
	mSvc.On("Upload", ctx, mock.Anything, "amazon.png", "image/png", int64(9), "Amazon").
		Return(&model.Media{ID: "a1", Filename: "amazon.png"}, nil)

	s := NewSeeder(mSvc, nil, dir, mapping, logger.Nop())
	idx, err := s.SeedMedia(ctx, MediaIndex{})

	require.NoError(t, err)
	assert.Equal(t, "amazon.png", idx.Filename("amazon"))
	assert.Equal(t, "hero-lobby-2.jpg", idx.Filename("hero-lobby"))
	assert.Equal(t, "", idx.Filename("stc"))
	mSvc.AssertExpectations(t)
}

func TestSeeder_SeedMedia_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeAsset(t, dir, "logos/amazon.png", "png")
	mapping := media.Mapping{"amazon": "logos/amazon.png"}

	t.Run("lookup failure", func(t *testing.T) {
		mSvc := new(svcMocks.MockMediaService)
		mSvc.On("Lookup", ctx, "amazon.png").Return(nil, errors.New("db down"))

		_, err := NewSeeder(mSvc, nil, dir, mapping, logger.Nop()).SeedMedia(ctx, MediaIndex{})

		assert.ErrorContains(t, err, "lookup amazon.png: db down")
	})

	t.Run("upload failure", func(t *testing.T) {
		mSvc := new(svcMocks.MockMediaService)
		mSvc.On("Lookup", ctx, "amazon.png").Return(nil, service.ErrNotFound)
		mSvc.On("Upload", ctx, mock.Anything, "amazon.png", "image/png", int64(3), "Amazon").
			Return(nil, errors.New("storage down"))

		_, err := NewSeeder(mSvc, nil, dir, mapping, logger.Nop()).SeedMedia(ctx, MediaIndex{})

		assert.ErrorContains(t, err, "upload amazon.png: storage down")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewSeeder(new(svcMocks.MockMediaService), nil, dir, mapping, logger.Nop()).SeedMedia(cctx, MediaIndex{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSeeder_SeedHomePage(t *testing.T) {
	ctx := context.Background()
	idx := MediaIndex{
		"amazon":            {Filename: "amazon.png"},
		"stc":               {Filename: "stc-2.png"},
		"hero-lobby":        {Filename: "hero-lobby.jpg"},
		"project-riyadh-hq": {Filename: "project-riyadh-hq.jpg"},
	}

	t.Run("writes the first home page", func(t *testing.T) {
		gSvc := new(svcMocks.MockGlobalService)
		gSvc.On("Exists", ctx, "home-page").Return(false, nil)

		var written content.Node
		gSvc.On("Update", ctx, "home-page", mock.Anything).
			Run(func(args mock.Arguments) { written = args.Get(2).(content.Node) }).
			Return(content.Node{}, nil)

		_, err := NewSeeder(nil, gSvc, "", nil, logger.Nop()).SeedHomePage(ctx, idx)
		require.NoError(t, err)

		clients := written["clientsSection"].(map[string]any)["clients"].([]any)
		require.Len(t, clients, 2)
		assert.Equal(t, map[string]any{"name": "Amazon", "logo": "amazon.png"}, clients[0])
		assert.Equal(t, map[string]any{"name": "STC", "logo": "stc-2.png"}, clients[1])

		hero := written["heroSection"].(map[string]any)
		assert.Equal(t, "hero-lobby.jpg", hero["backgroundImage"])
		about := written["aboutSection"].(map[string]any)
		assert.Nil(t, about["image"])

		projects := written["projectsSection"].(map[string]any)["projects"].([]any)
		assert.Len(t, projects, 1)
		gSvc.AssertExpectations(t)
	})

	t.Run("existing home page is left alone", func(t *testing.T) {
		gSvc := new(svcMocks.MockGlobalService)
		gSvc.On("Exists", ctx, "home-page").Return(true, nil)

		_, err := NewSeeder(nil, gSvc, "", nil, logger.Nop()).SeedHomePage(ctx, idx)

		assert.NoError(t, err)
		gSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existence check failure", func(t *testing.T) {
		gSvc := new(svcMocks.MockGlobalService)
		gSvc.On("Exists", ctx, "home-page").Return(false, errors.New("db down"))

		_, err := NewSeeder(nil, gSvc, "", nil, logger.Nop()).SeedHomePage(ctx, idx)

		assert.ErrorContains(t, err, "check home-page: db down")
	})
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeAsset(t, dir, "brand/district-logo.svg", "<svg/>")
	mapping := media.Mapping{"district-logo": "brand/district-logo.svg"}

	mSvc := new(svcMocks.MockMediaService)
	mSvc.On("Lookup", ctx, "district-logo.svg").Return(nil, service.ErrNotFound)
	mSvc.On("Upload", ctx, mock.Anything, "district-logo.svg", "image/svg+xml", int64(6), "District logo").
		Return(&model.Media{ID: "l1", Filename: "district-logo.svg"}, nil)

	gSvc := new(svcMocks.MockGlobalService)
	gSvc.On("Exists", ctx, "home-page").Return(true, nil)
	gSvc.On("Exists", ctx, "site-settings").Return(false, nil)
	gSvc.On("Update", ctx, "site-settings", mock.MatchedBy(func(doc content.Node) bool {
		header, _ := doc["header"].(map[string]any)
		return header["logo"] == "district-logo.svg"
	})).Return(content.Node{}, nil)

	idx, err := NewSeeder(mSvc, gSvc, dir, mapping, logger.Nop()).Run(ctx)

	require.NoError(t, err)
	assert.Len(t, idx, 1)
	mSvc.AssertExpectations(t)
	gSvc.AssertExpectations(t)
}
