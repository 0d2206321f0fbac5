// Package service implements the usage time-series synthesis engine.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/teleforge/internal/decompose"
	"github.com/smallbiznis/teleforge/internal/generator/domain"
	"github.com/smallbiznis/teleforge/internal/observability"
	"github.com/smallbiznis/teleforge/internal/randstream"
	"github.com/smallbiznis/teleforge/internal/signal"
	"github.com/smallbiznis/teleforge/pkg/month"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options selects the seed, the tunables, and the batching behavior for one
// synthesis run.
type Options struct {
	Seed                uint64
	Params              signal.Params
	IncludeChurnZeroRow bool
	Workers             int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 8
	}
	return o
}

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Metrics *observability.Metrics `optional:"true"`
}

// Service generates monthly usage series. It holds no per-account state:
// every account owns its lifecycle facts and its own random stream, so
// accounts can be processed on any worker in any order.
type Service struct {
	log     *zap.Logger
	metrics *observability.Metrics
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:     p.Log.Named("generator.service"),
		metrics: p.Metrics,
	}
}

// Series synthesizes the ordered usage records for one account across the
// requested months. Months outside the account's lifecycle window emit
// nothing; the churn month emits nothing unless IncludeChurnZeroRow is set,
// in which case it emits a single all-zero row.
func (s *Service) Series(lc domain.AccountLifecycle, months []time.Time, opts Options) ([]domain.UsageRecord, error) {
	if err := lc.Validate(); err != nil {
		return nil, err
	}

	composer := signal.NewComposer(opts.Params)
	rng := randstream.ForAccount(opts.Seed, lc.AccountID)
	ratios := lc.Profile.Ratios()
	baseline := lc.Profile.Baseline()
	sigma := composer.Params().RatioSigma

	records := make([]domain.UsageRecord, 0, len(months))
	for _, raw := range months {
		m := month.Norm(raw)

		if lc.HasChurn() && m.Equal(month.Norm(*lc.ChurnMonth)) {
			if opts.IncludeChurnZeroRow {
				records = append(records, domain.UsageRecord{AccountID: lc.AccountID, Month: m})
			}
			continue
		}
		if month.Before(m, lc.FirstActive) || month.Before(lc.LastActive, m) {
			continue
		}

		tenure := month.Diff(lc.FirstActive, m)
		monthsToChurn := 0
		if lc.HasChurn() {
			monthsToChurn = month.Diff(m, *lc.ChurnMonth)
		}

		mult := composer.Multiplier(tenure, m.Month(), monthsToChurn, lc.HasChurn())
		totals := composer.Totals(baseline, mult, rng)

		rec := domain.UsageRecord{
			AccountID:    lc.AccountID,
			Month:        m,
			TotalCalls:   totals.Calls,
			TotalMinutes: totals.Minutes,
			PhoneMAU:     totals.MAU,
		}

		// Independent partitions of the same totals: a call lands in one
		// voice/fax bucket, one in/out bucket and one device bucket at the
		// same time.
		rec.VoiceCalls, rec.FaxCalls = decompose.Pair(totals.Calls, ratios.Voice, sigma, rng)
		rec.VoiceMins, rec.FaxMins = decompose.Pair(totals.Minutes, ratios.Voice, sigma, rng)
		rec.InboundCalls, rec.OutboundCalls = decompose.Pair(totals.Calls, ratios.Inbound, sigma, rng)
		rec.InboundMins, rec.OutboundMins = decompose.Pair(totals.Minutes, ratios.Inbound, sigma, rng)

		// second-level partitions, each consistent with its own parent
		rec.InVoiceCalls, rec.OutVoiceCalls = decompose.Pair(rec.VoiceCalls, ratios.Inbound, sigma, rng)
		rec.InVoiceMins, rec.OutVoiceMins = decompose.Pair(rec.VoiceMins, ratios.Inbound, sigma, rng)
		rec.InFaxCalls, rec.OutFaxCalls = decompose.Pair(rec.FaxCalls, ratios.Inbound, sigma, rng)
		rec.InFaxMins, rec.OutFaxMins = decompose.Pair(rec.FaxMins, ratios.Inbound, sigma, rng)

		device := decompose.Split(totals.Calls,
			[]float64{ratios.Hardphone, ratios.Softphone, ratios.Mobile}, sigma, rng)
		rec.HardphoneCalls, rec.SoftphoneCalls, rec.MobileCalls = device[0], device[1], device[2]
		rec.MobileAndroidCalls, rec.MobileIOSCalls = decompose.Pair(rec.MobileCalls, ratios.MobileAndroid, sigma, rng)

		rec.CallMAU, rec.FaxMAU = decompose.Pair(totals.MAU, ratios.CallMAU, sigma, rng)

		records = append(records, rec)
	}
	return records, nil
}

// SeriesWindow is Series over the account's own lifecycle window, churn
// month included when a zero row is requested.
func (s *Service) SeriesWindow(lc domain.AccountLifecycle, opts Options) ([]domain.UsageRecord, error) {
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	last := lc.LastActive
	if lc.HasChurn() && opts.IncludeChurnZeroRow {
		last = *lc.ChurnMonth
	}
	return s.Series(lc, month.Sequence(lc.FirstActive, last), opts)
}

// Dataset is the batch output: the flattened record table, one churn record
// per closed account, and the per-account failures that were isolated.
type Dataset struct {
	Records []domain.UsageRecord
	Churn   []domain.ChurnRecord
	Failed  map[int64]error
}

// Dataset fans the synthesis out across accounts. Accounts are independent,
// so workers share nothing; results keep the input account order. A bad
// lifecycle aborts only its own account and is reported in Failed.
func (s *Service) Dataset(ctx context.Context, accounts []domain.AccountLifecycle, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()
	start := time.Now()

	perAccount := make([][]domain.UsageRecord, len(accounts))
	var mu sync.Mutex
	failed := make(map[int64]error)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, lc := range accounts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			series, err := s.SeriesWindow(lc, opts)
			if err != nil {
				s.log.Warn("skipping account with invalid lifecycle",
					zap.Int64("account_id", lc.AccountID),
					zap.Error(err),
				)
				mu.Lock()
				failed[lc.AccountID] = err
				mu.Unlock()
				return nil
			}
			perAccount[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{Failed: failed}
	for i, series := range perAccount {
		ds.Records = append(ds.Records, series...)
		lc := accounts[i]
		if lc.HasChurn() {
			if _, bad := failed[lc.AccountID]; !bad {
				ds.Churn = append(ds.Churn, domain.ChurnRecord{
					AccountID:  lc.AccountID,
					ChurnMonth: month.Norm(*lc.ChurnMonth),
					Churned:    1,
				})
			}
		}
	}

	if s.metrics != nil {
		s.metrics.AccountsGenerated.Add(float64(len(accounts) - len(failed)))
		s.metrics.AccountsFailed.Add(float64(len(failed)))
		s.metrics.RecordsGenerated.Add(float64(len(ds.Records)))
		s.metrics.DatasetsGenerated.Inc()
		s.metrics.GenerationSeconds.Observe(time.Since(start).Seconds())
	}
	s.log.Info("dataset synthesized",
		zap.Int("accounts", len(accounts)),
		zap.Int("failed", len(failed)),
		zap.Int("records", len(ds.Records)),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}
