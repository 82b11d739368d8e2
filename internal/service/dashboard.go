package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/ingestion"
	"github.com/guttosm/tradepulse/internal/logger"
	"github.com/guttosm/tradepulse/internal/metrics"
)

// ErrChartNotFound is returned for an unknown chart id.
var ErrChartNotFound = errors.New("chart not found")

const maxLoadAttempts = 3

// DashboardService builds the dashboard from a source and serves it from cache
// until the source fingerprint changes.
type DashboardService interface {
	// Dashboard returns the dashboard for the current source state, building it when needed.
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	// Build loads the source and renders every chart, bypassing the cache.
	Build(ctx context.Context) (*models.Dashboard, error)
	Chart(ctx context.Context, id string) (models.Artifact, error)
	Table(ctx context.Context, page, size int) (models.TablePage, error)
	Sample(ctx context.Context) (*models.Table, error)
	// Ready reports whether the source can be read.
	Ready(ctx context.Context) error
}

// Options tunes a DashboardService.
type Options struct {
	SampleSize int
	SampleSeed uint64
	Parallel   int
}

type dashboardService struct {
	src     ingestion.Source
	opts    Options
	blocks  []Block
	cache   *cache.Cache
	group   singleflight.Group
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewDashboardService(src ingestion.Source, opts Options, m *metrics.Metrics) DashboardService {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &dashboardService{
		src:     src,
		opts:    opts,
		blocks:  Catalog(),
		cache:   cache.New(cache.NoExpiration, 0),
		metrics: m,
		now:     time.Now,
	}
}

func dashboardKey(fp string) string    { return fp }
func artifactKey(fp, id string) string { return fp + "/" + id }

func (s *dashboardService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	fp, err := s.src.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}
	if d, ok := s.cache.Get(dashboardKey(fp)); ok {
		s.metrics.CacheHit()
		return d.(*models.Dashboard), nil
	}

	// Concurrent callers for the same source state share one build. The build
	// outlives a cancelled caller so the others still get a result.
	v, err, _ := s.group.Do(fp, func() (any, error) {
		if d, ok := s.cache.Get(dashboardKey(fp)); ok {
			return d, nil
		}
		d, err := s.Build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.store(d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Dashboard), nil
}

// store replaces whatever was cached for older source states.
func (s *dashboardService) store(d *models.Dashboard) {
	s.cache.Flush()
	s.cache.Set(dashboardKey(d.Fingerprint), d, cache.NoExpiration)
	for _, a := range d.Charts {
		s.cache.Set(artifactKey(d.Fingerprint, a.ID), a, cache.NoExpiration)
	}
}

func (s *dashboardService) Build(ctx context.Context) (d *models.Dashboard, err error) {
	start := s.now()
	defer func() { s.metrics.BuildFinished(err) }()

	fp, table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.SetTableRows(table.Len())

	sample, err := ingestion.Sample(table, s.opts.SampleSize, s.opts.SampleSeed)
	if err != nil {
		return nil, err
	}

	charts := make([]models.Artifact, len(s.blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallel)
	for i, b := range s.blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			data, err := b.Render(table)
			s.metrics.ObserveRender(b.ID, time.Since(t0))
			if err != nil {
				return fmt.Errorf("chart %s: %w", b.ID, err)
			}
			charts[i] = models.Artifact{
				ID:          b.ID,
				Title:       b.Title,
				Kind:        b.Kind,
				ContentType: b.ContentType(),
				Data:        data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.L().Error().Str("source", s.src.Name()).Err(err).Msg("dashboard build failed")
		return nil, err
	}

	d = &models.Dashboard{
		Fingerprint: fp,
		BuiltAt:     s.now(),
		Table:       table,
		Sample:      sample,
		Charts:      charts,
	}
	logger.L().Info().
		Str("source", s.src.Name()).
		Str("fingerprint", fp).
		Int("rows", table.Len()).
		Int("charts", len(charts)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("dashboard built")
	return d, nil
}

// load reads the source and returns it with the fingerprint it was read at.
// When the source changes during the read it is read again; if it never
// settles the fingerprint from before the last read is kept, so the next
// request sees a newer fingerprint and rebuilds.
func (s *dashboardService) load(ctx context.Context) (string, *models.Table, error) {
	var (
		fp    string
		table *models.Table
	)
	for attempt := 1; attempt <= maxLoadAttempts; attempt++ {
		before, err := s.src.Fingerprint(ctx)
		if err != nil {
			return "", nil, err
		}
		if table, err = s.src.Load(ctx); err != nil {
			return "", nil, err
		}
		fp = before
		after, err := s.src.Fingerprint(ctx)
		if err != nil {
			return "", nil, err
		}
		if after == before {
			break
		}
		logger.L().Warn().
			Str("source", s.src.Name()).
			Str("before", before).
			Str("after", after).
			Int("attempt", attempt).
			Msg("source changed while loading")
	}
	return fp, table, nil
}

func (s *dashboardService) Chart(ctx context.Context, id string) (models.Artifact, error) {
	fp, err := s.src.Fingerprint(ctx)
	if err != nil {
		return models.Artifact{}, err
	}
	if a, ok := s.cache.Get(artifactKey(fp, id)); ok {
		s.metrics.CacheHit()
		return a.(models.Artifact), nil
	}
	if !s.known(id) {
		return models.Artifact{}, fmt.Errorf("%w: %s", ErrChartNotFound, id)
	}
	d, err := s.Dashboard(ctx)
	if err != nil {
		return models.Artifact{}, err
	}
	a, ok := d.Chart(id)
	if !ok {
		return models.Artifact{}, fmt.Errorf("%w: %s", ErrChartNotFound, id)
	}
	return a, nil
}

func (s *dashboardService) known(id string) bool {
	for _, b := range s.blocks {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (s *dashboardService) Table(ctx context.Context, page, size int) (models.TablePage, error) {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return models.TablePage{}, err
	}
	if page < 1 {
		page = 1
	}
	return models.TablePage{
		Header: d.Table.Header,
		Rows:   d.Table.Paginate(page, size),
		Page:   page,
		Size:   size,
		Total:  d.Table.Len(),
	}, nil
}

func (s *dashboardService) Sample(ctx context.Context) (*models.Table, error) {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return d.Sample, nil
}

func (s *dashboardService) Ready(ctx context.Context) error {
	_, err := s.src.Fingerprint(ctx)
	return err
}
