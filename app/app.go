package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"iv-tracker/cache"
	"iv-tracker/config"
	"iv-tracker/database"
	"iv-tracker/database/types"
)

// App represents one generator run
type App struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer // Summary output, stdout in production
	now    func() time.Time
}

// New creates a new application instance
func New(cfg *config.Config, logger *zap.Logger, out io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		config: cfg,
		logger: logger,
		out:    out,
		now:    time.Now,
	}
}

// Generate loads the dashboard data, writes the page and, when enabled,
// publishes the payload to redis. The database is closed on every path.
func (a *App) Generate(ctx context.Context) error {
	if err := a.config.Validate(); err != nil {
		return err
	}

	db, err := a.connect()
	if err != nil {
		return err
	}
	defer a.closeDB(db)

	loader := NewLoader(database.NewVolatilityRepository(db), a.config.Analysis, a.logger)
	loader.now = a.now

	dash, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dashboard data failed: %w", err)
	}

	emitter := NewEmitter(a.config.TemplatePath, a.config.OutputPath, a.out, a.logger)
	payload, err := emitter.Emit(dash)
	if err != nil {
		return err
	}

	if a.config.Redis.Enabled {
		a.publish(ctx, dash, payload)
	}
	return nil
}

// Stats returns the source table row counts without rendering anything
func (a *App) Stats(ctx context.Context) (types.Stats, error) {
	if err := a.config.Validate(); err != nil {
		return types.Stats{}, err
	}

	db, err := a.connect()
	if err != nil {
		return types.Stats{}, err
	}
	defer a.closeDB(db)

	return database.NewVolatilityRepository(db).GetStats(ctx)
}

func (a *App) connect() (*database.Database, error) {
	a.logger.Debug("Connecting to database",
		zap.String("driver", a.config.DatabaseDriver),
		zap.String("path", a.config.DatabasePath))

	db, err := database.Connect(database.Config{
		Driver:   a.config.DatabaseDriver,
		Path:     a.config.DatabasePath,
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

func (a *App) closeDB(db *database.Database) {
	if err := db.Close(); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
}

// publish is best effort: the page is already written, so a redis failure
// is logged and does not fail the run
func (a *App) publish(ctx context.Context, dash *types.Dashboard, payload []byte) {
	rc := a.config.Redis
	client := cache.NewRedisClient(rc.Host, rc.Port, rc.Password, a.logger)
	if client == nil {
		a.logger.Warn("Redis unavailable, payload not published")
		return
	}
	defer client.Close()

	publisher := NewPayloadPublisher(client, rc.Key, rc.Channel, time.Duration(rc.TTLHours)*time.Hour, a.logger)
	if err := publisher.Publish(ctx, dash, payload); err != nil {
		a.logger.Warn("Payload publish failed", zap.Error(err))
	}
}
