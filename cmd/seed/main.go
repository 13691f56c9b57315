package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"team-seed.backend/internal/config"
	"team-seed.backend/internal/domain/entities"
	domainerrors "team-seed.backend/internal/domain/errors"
	"team-seed.backend/internal/infrastructure/datasources/postgres"
	"team-seed.backend/internal/infrastructure/datasources/sqlite"
	"team-seed.backend/internal/infrastructure/metrics"
	"team-seed.backend/internal/infrastructure/repositories"
	"team-seed.backend/internal/seeddata"
	"team-seed.backend/internal/usecases"
	"team-seed.backend/pkg/logger"
	"team-seed.backend/pkg/utils"
)

type seedRuntime interface {
	Seed(ctx context.Context, members []*entities.TeamMember) (*usecases.SeedResult, error)
}

type seedDeps struct {
	loadEnv    func() error
	loadCfg    func() *config.Config
	initLog    func(env string)
	loadRoster func(path string) ([]*entities.TeamMember, error)
	prepare    func(cfg *config.Config, recorder usecases.SeedRecorder) (seedRuntime, io.Closer, error)
	out        io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

var openSeedDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.NewConnection(cfg.Path)
	case config.DriverPostgres:
		return postgres.NewConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// closeConnPool releases a pool gorm cannot expose as *sql.DB.
func closeConnPool(db *gorm.DB) {
	if c, ok := db.ConnPool.(io.Closer); ok {
		_ = c.Close()
	}
}

func prepareSeedRuntime(cfg *config.Config, recorder usecases.SeedRecorder) (seedRuntime, io.Closer, error) {
	db, err := openSeedDB(cfg.Database)
	if err != nil {
		return nil, nil, domainerrors.StorageUnavailable("connect "+cfg.Database.Target(), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		closeConnPool(db)
		return nil, nil, domainerrors.StorageUnavailable("connect "+cfg.Database.Target(), err)
	}

	repo := repositories.NewTeamMemberRepository(db)
	uow := repositories.NewUnitOfWork(db)
	return usecases.NewSeedUsecase(repo, uow, recorder), sqlDB, nil
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv:    func() error { return godotenv.Load() },
		loadCfg:    config.Load,
		initLog:    logger.Init,
		loadRoster: seeddata.LoadFile,
		prepare:    prepareSeedRuntime,
		out:        os.Stdout,
	}
}

func runSeed(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.initLog == nil {
		deps.initLog = def.initLog
	}
	if deps.loadRoster == nil {
		deps.loadRoster = def.loadRoster
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	dbFlag := fs.String("db", "", "SQLite database file (overrides DB_PATH)")
	dataFlag := fs.String("data", "", "JSON roster file (overrides SEED_DATA_FILE; default: embedded roster)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	if *dbFlag != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = *dbFlag
	}
	if *dataFlag != "" {
		cfg.Seed.DataFile = *dataFlag
	}

	deps.initLog(cfg.App.Env)
	defer logger.Sync()

	ctx := logger.WithRunID(context.Background(), utils.NewRunID())
	if cfg.Seed.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Seed.Timeout)
		defer cancel()
	}

	members, err := deps.loadRoster(cfg.Seed.DataFile)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	logger.Info(ctx, "Roster loaded",
		zap.Int("records", len(members)),
		zap.String("source", rosterSource(cfg.Seed.DataFile)),
		zap.String("target", cfg.Database.Target()),
	)

	seedMetrics := metrics.NewSeedMetrics()
	runtime, closer, err := deps.prepare(cfg, seedMetrics)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	result, seedErr := runtime.Seed(ctx, members)

	if err := pushSeedMetrics(ctx, seedMetrics, cfg); err != nil {
		logger.Warn(ctx, "Failed to push seed metrics", zap.Error(err))
	}

	if seedErr != nil {
		return fmt.Errorf("seed team_members: %w", seedErr)
	}

	_, _ = fmt.Fprintf(deps.out, "team_members ready: %d record(s) applied to %s\n", result.Applied, cfg.Database.Target())
	return nil
}

// pushSeedMetrics bounds the push by SEED_TIMEOUT, independent of the run deadline.
func pushSeedMetrics(ctx context.Context, m *metrics.SeedMetrics, cfg *config.Config) error {
	pushCtx := context.WithoutCancel(ctx)
	if cfg.Seed.Timeout > 0 {
		var cancel context.CancelFunc
		pushCtx, cancel = context.WithTimeout(pushCtx, cfg.Seed.Timeout)
		defer cancel()
	}
	return m.Push(pushCtx, cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName)
}

func rosterSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
