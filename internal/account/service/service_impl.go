// Package service synthesizes the simulated account population: fixed
// attributes, lifecycle windows and the monthly attribute table.
package service

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/teleforge/internal/account/domain"
	"github.com/smallbiznis/teleforge/internal/config"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
	"github.com/smallbiznis/teleforge/internal/profile"
	"github.com/smallbiznis/teleforge/internal/randstream"
	"github.com/smallbiznis/teleforge/pkg/month"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
	}
}

// Generate samples the account population. Attributes and lifecycle timing
// come from each account's own random stream keyed by its enterprise
// account id, so the population is reproducible for a fixed seed.
func (s *Service) Generate(cfg config.GeneratorConfig) ([]domain.Account, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	horizon := month.Diff(start, end)

	// annual churn probability converted to a per-month hazard
	hazard := 1 - math.Pow(1-cfg.AnnualChurnRate, 1.0/12)

	accounts := make([]domain.Account, 0, cfg.Accounts)
	for ea := int64(1); ea <= int64(cfg.Accounts); ea++ {
		rng := randstream.ForAccount(cfg.Seed, ea)

		// leave room for at least six months of history
		maxOffset := horizon - 5
		if maxOffset < 1 {
			maxOffset = 1
		}
		first := month.Add(start, rng.IntN(maxOffset))

		prof := profile.All()[rng.IntN(len(profile.All()))]

		churnMonth := sampleChurnMonth(rng, first, end, hazard)
		last := end
		finalStatus := ""
		if churnMonth != nil {
			last = month.Add(*churnMonth, -1)
			if rng.IntN(2) == 0 {
				finalStatus = domain.StatusSuspended
			} else {
				finalStatus = domain.StatusClosed
			}
		}

		acct := domain.Account{
			EnterpriseAccountID: ea,
			ServiceAccountID:    s.genID.Generate().Int64(),
			Company:             pick(rng, cfg.CompanyPrefixes) + " " + pick(rng, cfg.CompanySuffixes),
			EABrand:             pick(rng, cfg.Brands),
			EAUBrand:            pick(rng, cfg.UBrands),
			SABrand:             pick(rng, cfg.Brands),
			SAUBrand:            pick(rng, cfg.UBrands),
			Package:             pick(rng, cfg.Packages),
			Tier:                pick(rng, cfg.Tiers),
			IsTester:            rng.Float64() < cfg.TesterRatio,
			ExternalAccountID:   ulid.MustNew(ulid.Timestamp(first), randstream.Reader(rng)).String(),
			BAN:                 fmt.Sprintf("BAN-%06d", 100000+rng.IntN(900000)),
			OpcoID:              pick(rng, cfg.Opcos),
			FinalStatus:         finalStatus,
		}
		acct.Lifecycle = generatordomain.AccountLifecycle{
			AccountID:   acct.ServiceAccountID,
			Profile:     prof,
			FirstActive: first,
			LastActive:  last,
			ChurnMonth:  churnMonth,
		}
		accounts = append(accounts, acct)
	}

	s.log.Info("account population generated",
		zap.Int("accounts", len(accounts)),
		zap.Uint64("seed", cfg.Seed),
	)
	return accounts, nil
}

// sampleChurnMonth walks the months after onboarding and fires the monthly
// hazard. nil means the account survives the whole window.
func sampleChurnMonth(rng *rand.Rand, first, end time.Time, hazard float64) *time.Time {
	if hazard <= 0 {
		return nil
	}
	for m := month.Add(first, 1); !month.Before(end, m); m = month.Add(m, 1) {
		if rng.Float64() < hazard {
			c := m
			return &c
		}
	}
	return nil
}

// AttributeRows expands accounts into the monthly attribute table: one
// Active row per active month and, for closed accounts, a final row
// carrying the non-active status at the churn month.
func (s *Service) AttributeRows(accounts []domain.Account) []domain.AttributeRow {
	var rows []domain.AttributeRow
	for _, acct := range accounts {
		for _, m := range month.Sequence(acct.Lifecycle.FirstActive, acct.Lifecycle.LastActive) {
			rows = append(rows, newRow(acct, m, domain.StatusActive))
		}
		if acct.Lifecycle.HasChurn() {
			rows = append(rows, newRow(acct, *acct.Lifecycle.ChurnMonth, acct.FinalStatus))
		}
	}
	return rows
}

func newRow(acct domain.Account, m time.Time, saStatus string) domain.AttributeRow {
	return domain.AttributeRow{
		Month:               m,
		EnterpriseAccountID: acct.EnterpriseAccountID,
		Company:             acct.Company,
		EABrandID:           acct.EABrand.ID,
		EABrandName:         acct.EABrand.Name,
		EAUBrandID:          acct.EAUBrand.ID,
		EAUBrandDescription: acct.EAUBrand.Description,
		EAAcctStatus:        domain.StatusActive,
		ServiceAccountID:    acct.ServiceAccountID,
		SABrandID:           acct.SABrand.ID,
		SABrandName:         acct.SABrand.Name,
		SAUBrandID:          acct.SAUBrand.ID,
		SAUBrandDescription: acct.SAUBrand.Description,
		SAAcctStatus:        saStatus,
		PackageID:           acct.Package.ID,
		PackageName:         acct.Package.Name,
		CatalogPackageID:    acct.Package.CatalogID,
		CatalogPackageName:  acct.Package.CatalogName,
		IsTester:            acct.IsTester,
		TierID:              acct.Tier.ID,
		TierName:            acct.Tier.Name,
		EditionName:         acct.Tier.Edition,
		ExternalAccountID:   acct.ExternalAccountID,
		BAN:                 acct.BAN,
		OpcoID:              acct.OpcoID,
	}
}

func pick[T any](rng *rand.Rand, list []T) T {
	return list[rng.IntN(len(list))]
}
