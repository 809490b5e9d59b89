package assets

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/hero3d/internal/engine/model"
	"github.com/Faultbox/hero3d/internal/logger"
)

// Loader turns asset URLs into models, substituting placeholders on failure.
type Loader struct {
	fetcher *Fetcher
	log     *zap.Logger
}

// NewLoader creates a loader on top of f. A nil fetcher uses NewFetcher(nil).
func NewLoader(f *Fetcher) *Loader {
	if f == nil {
		f = NewFetcher(nil)
	}
	return &Loader{
		fetcher: f,
		log:     logger.Named("assets"),
	}
}

// Load fetches and parses a single asset.
func (l *Loader) Load(ctx context.Context, rawURL string) (*model.Model, error) {
	data, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	mesh, mat, err := Parse(rawURL, data, localFS(rawURL))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return model.New(modelName(rawURL), mesh, mat), nil
}

// LoadAll loads every URL concurrently and returns one model per URL in URL
// order. Every slot starts at once, so a slow asset never delays another.
// Failed slots hold a placeholder; LoadAll itself never fails.
func (l *Loader) LoadAll(ctx context.Context, urls []string) []*model.Model {
	models := make([]*model.Model, len(urls))

	var g errgroup.Group

	for i, u := range urls {
		g.Go(func() error {
			m, err := l.Load(ctx, u)
			if err != nil {
				l.log.Warn("model load failed, using placeholder",
					zap.Int("slot", i),
					zap.String("url", u),
					zap.Error(err),
				)
				m = model.NewPlaceholder()
			} else {
				l.log.Debug("model loaded",
					zap.Int("slot", i),
					zap.String("url", u),
					zap.Int("triangles", m.Mesh.TriangleCount()),
				)
			}
			models[i] = m
			return nil
		})
	}

	_ = g.Wait()

	hits, misses := l.fetcher.Cache().Stats()
	l.log.Debug("models resolved",
		zap.Int("count", len(urls)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return models
}

// localFS returns the directory of a filesystem URL for resolving
// glTF side files, or nil for remote URLs.
func localFS(rawURL string) fs.FS {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return nil
		}
		p = u.Path
	}
	return os.DirFS(filepath.Dir(p))
}

func modelName(rawURL string) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Base(filepath.ToSlash(p))
}
