package systemd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/rounal/internal/source"
)

// Catalog holds both service listings from one load.
type Catalog struct {
	Units     []ServiceUnit
	UnitFiles []ServiceUnitFile
}

// ListingError names the listing that failed a catalog load.
type ListingError struct {
	Listing source.Category
	Err     error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Listing, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// Loader fetches the unit and unit file listings concurrently.
type Loader struct {
	adapter source.Adapter
	logger  *zap.Logger
}

// NewLoader returns a loader backed by adapter.
func NewLoader(adapter source.Adapter, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{adapter: adapter, logger: logger}
}

// Load runs both listings and parses them. Either failure fails the whole
// call with a *ListingError; there is no partial catalog. The group is not
// bound to a derived context, so one failure does not cancel the other.
func (l *Loader) Load(ctx context.Context) (Catalog, error) {
	var (
		g       errgroup.Group
		catalog Catalog
		start   = time.Now()
	)

	g.Go(func() error {
		lines, err := l.list(ctx, source.CategoryListUnits)
		if err != nil {
			return err
		}
		catalog.Units = ParseUnits(lines)
		return nil
	})
	g.Go(func() error {
		lines, err := l.list(ctx, source.CategoryListUnitFiles)
		if err != nil {
			return err
		}
		catalog.UnitFiles = ParseUnitFiles(lines)
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn("catalog load failed", zap.Error(err))
		return Catalog{}, err
	}

	l.logger.Debug("catalog loaded",
		zap.Int("units", len(catalog.Units)),
		zap.Int("unit_files", len(catalog.UnitFiles)),
		zap.Duration("took", time.Since(start)),
	)
	return catalog, nil
}

func (l *Loader) list(ctx context.Context, category source.Category) ([]string, error) {
	q := source.Query{Category: category}
	res, err := l.adapter.Run(ctx, q)
	if err != nil {
		return nil, &ListingError{Listing: category, Err: err}
	}
	if err := res.Err(q); err != nil {
		return nil, &ListingError{Listing: category, Err: err}
	}
	return res.Lines(), nil
}
