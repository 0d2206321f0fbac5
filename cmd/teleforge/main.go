package main

import (
	"context"
	"crypto/rand"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/smallbiznis/teleforge/internal/account"
	accountservice "github.com/smallbiznis/teleforge/internal/account/service"
	"github.com/smallbiznis/teleforge/internal/churn"
	"github.com/smallbiznis/teleforge/internal/clock"
	"github.com/smallbiznis/teleforge/internal/config"
	"github.com/smallbiznis/teleforge/internal/export"
	"github.com/smallbiznis/teleforge/internal/generator"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
	generatorservice "github.com/smallbiznis/teleforge/internal/generator/service"
	"github.com/smallbiznis/teleforge/internal/loader"
	"github.com/smallbiznis/teleforge/internal/logger"
	"github.com/smallbiznis/teleforge/internal/observability"
	"github.com/smallbiznis/teleforge/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		account.Module,
		generator.Module,
		loader.Module,

		fx.Invoke(run),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

type runParams struct {
	fx.In

	Cfg        config.Config
	GenCfg     *config.GeneratorConfigHolder
	AccountSvc *accountservice.Service
	GenSvc     *generatorservice.Service
	Loader     *loader.Loader
	Clk        clock.Clock
	Log        *zap.Logger
}

// run performs one full generation pass and shuts the app down when done.
func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, p runParams) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := generate(context.Background(), p); err != nil {
					p.Log.Error("generation failed", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
	})
}

func generate(ctx context.Context, p runParams) error {
	cfg := p.GenCfg.Current()

	accounts, err := p.AccountSvc.Generate(cfg)
	if err != nil {
		return err
	}

	lifecycles := make([]generatordomain.AccountLifecycle, 0, len(accounts))
	for _, a := range accounts {
		lifecycles = append(lifecycles, a.Lifecycle)
	}

	ds, err := p.GenSvc.Dataset(ctx, lifecycles, generatorservice.Options{
		Seed:                cfg.Seed,
		Params:              cfg.Signal,
		IncludeChurnZeroRow: cfg.IncludeChurnZeroRow,
		Workers:             cfg.Workers,
	})
	if err != nil {
		return err
	}

	rows := p.AccountSvc.AttributeRows(accounts)
	bundle := export.Bundle{
		Usage:      ds.Records,
		Churn:      churn.FromAttributeRows(rows),
		Attributes: rows,
	}

	if err := export.WriteDir(p.Cfg.OutputDir, bundle); err != nil {
		return err
	}
	p.Log.Info("dataset written",
		zap.String("dir", p.Cfg.OutputDir),
		zap.Int("usage_records", len(bundle.Usage)),
		zap.Int("churn_records", len(bundle.Churn)),
		zap.Int("attribute_rows", len(bundle.Attributes)),
	)

	if !p.Cfg.DBLoadEnabled {
		return nil
	}

	if err := p.Loader.Migrate(ctx); err != nil {
		return err
	}
	now := p.Clk.Now()
	return p.Loader.Load(ctx, loader.Manifest{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		CreatedAt: now,
		Accounts:  len(accounts),
		Records:   int64(len(bundle.Usage)),
		Params: datatypes.JSONMap{
			"seed":              cfg.Seed,
			"accounts":          cfg.Accounts,
			"start_month":       cfg.StartMonth,
			"end_month":         cfg.EndMonth,
			"annual_churn_rate": cfg.AnnualChurnRate,
		},
	}, bundle)
}
