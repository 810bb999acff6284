package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/archive"
	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/config"
	"github.com/matzehuels/execreport/pkg/errors"
)

// Open builds a runner with the cache and archive backends named in cfg.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runner, error) {
	c, err := OpenCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	store, err := OpenArchive(ctx, cfg.Archive)
	if err != nil {
		c.Close()
		return nil, err
	}
	return NewRunner(c, nil, store, logger), nil
}

// OpenCache opens the configured document cache.
func OpenCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil
	default:
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache")
		}
		return c, nil
	}
}

// OpenArchive opens the configured export archive.
func OpenArchive(ctx context.Context, cfg config.ArchiveConfig) (archive.Store, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return archive.NewNullStore(), nil
	case config.BackendMongo:
		s, err := archive.NewMongoStore(ctx, archive.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open mongo archive")
		}
		return s, nil
	default:
		s, err := archive.NewFileStore(cfg.Path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open archive")
		}
		return s, nil
	}
}

// OptionsFromConfig returns generation options for cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	labels := cfg.Labels
	return Options{
		Labels:         &labels,
		Format:         cfg.FormatOptions(),
		DefaultVersion: cfg.Report.Version,
		TTL:            cfg.Cache.TTL.Duration,
	}
}
