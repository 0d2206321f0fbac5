package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	"github.com/smallbiznis/teleforge/internal/signal"
	"go.uber.org/zap"
)

// GeneratorConfig is the explicit parameter object for a synthesis run.
// Everything the generators sample from lives here and is validated up
// front, never checked ad hoc at use.
type GeneratorConfig struct {
	Seed     uint64 `mapstructure:"seed"`
	Accounts int    `mapstructure:"accounts"`

	// dataset window, YYYY-MM inclusive
	StartMonth string `mapstructure:"startMonth"`
	EndMonth   string `mapstructure:"endMonth"`

	AnnualChurnRate     float64 `mapstructure:"annualChurnRate"`
	TesterRatio         float64 `mapstructure:"testerRatio"`
	IncludeChurnZeroRow bool    `mapstructure:"includeChurnZeroRow"`
	Workers             int     `mapstructure:"workers"`

	Signal signal.Params `mapstructure:"signal"`

	CompanyPrefixes []string                   `mapstructure:"companyPrefixes"`
	CompanySuffixes []string                   `mapstructure:"companySuffixes"`
	Brands          []accountdomain.BrandRef   `mapstructure:"brands"`
	UBrands         []accountdomain.UBrandRef  `mapstructure:"ubrands"`
	Packages        []accountdomain.PackageRef `mapstructure:"packages"`
	Tiers           []accountdomain.TierRef    `mapstructure:"tiers"`
	Opcos           []string                   `mapstructure:"opcos"`
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:            42,
		Accounts:        100,
		StartMonth:      "2021-01",
		EndMonth:        "2025-12",
		AnnualChurnRate: 0.10,
		TesterRatio:     0.05,
		Workers:         8,
		Signal:          signal.DefaultParams(),
		CompanyPrefixes: []string{
			"Global", "Digital", "Tech", "Smart", "Cloud", "Enterprise",
			"Advanced", "Premier", "Summit", "Prime", "Apex", "Nexus",
		},
		CompanySuffixes: []string{
			"Solutions", "Systems", "Technologies", "Corp", "Group",
			"Networks", "Communications", "Telecom", "Services", "Labs",
		},
		Brands: []accountdomain.BrandRef{
			{ID: 101, Name: "Skyline MVP"},
			{ID: 102, Name: "Skyline Office"},
			{ID: 103, Name: "Cloudline Work"},
			{ID: 104, Name: "Rainbow Office"},
			{ID: 105, Name: "Unify Office"},
		},
		UBrands: []accountdomain.UBrandRef{
			{ID: "UB1", Description: "Direct"},
			{ID: "UB2", Description: "Carrier"},
			{ID: "UB3", Description: "Reseller"},
		},
		Packages: []accountdomain.PackageRef{
			{ID: 11, Name: "Essentials", CatalogID: "CP11", CatalogName: "Essentials"},
			{ID: 12, Name: "Standard", CatalogID: "CP12", CatalogName: "Standard"},
			{ID: 13, Name: "Premium", CatalogID: "CP13", CatalogName: "Premium"},
			{ID: 14, Name: "Ultimate", CatalogID: "CP14", CatalogName: "Ultimate"},
		},
		Tiers: []accountdomain.TierRef{
			{ID: 1, Name: "Basic", Edition: "Standard"},
			{ID: 2, Name: "Professional", Edition: "Professional"},
			{ID: 3, Name: "Advanced", Edition: "Premium"},
			{ID: 4, Name: "Enterprise", Edition: "Ultimate"},
		},
		Opcos: []string{"OP1", "OP2", "OP3", "OP4", "OP5"},
	}
}

// Window parses the inclusive dataset month range.
func (c GeneratorConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", c.StartMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startMonth %q: %w", c.StartMonth, err)
	}
	end, err := time.Parse("2006-01", c.EndMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endMonth %q: %w", c.EndMonth, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("endMonth precedes startMonth")
	}
	return start, end, nil
}

// Validate rejects configurations the generators cannot sample from.
func (c GeneratorConfig) Validate() error {
	if c.Accounts <= 0 {
		return errors.New("accounts must be positive")
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if c.AnnualChurnRate < 0 || c.AnnualChurnRate >= 1 {
		return errors.New("annualChurnRate must be in [0, 1)")
	}
	if c.TesterRatio < 0 || c.TesterRatio > 1 {
		return errors.New("testerRatio must be in [0, 1]")
	}
	for name, n := range map[string]int{
		"companyPrefixes": len(c.CompanyPrefixes),
		"companySuffixes": len(c.CompanySuffixes),
		"brands":          len(c.Brands),
		"ubrands":         len(c.UBrands),
		"packages":        len(c.Packages),
		"tiers":           len(c.Tiers),
		"opcos":           len(c.Opcos),
	} {
		if n == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return c.Signal.Validate()
}

// GeneratorConfigHolder exposes the current generator configuration and
// follows file changes without a restart.
type GeneratorConfigHolder struct {
	current atomic.Value // holds GeneratorConfig
}

func NewGeneratorConfigHolder(log *zap.Logger) (*GeneratorConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("teleforge")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/teleforge")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TELEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	holder := &GeneratorConfigHolder{}
	cfg, err := unmarshalGenerator(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	if fileFound {
		v.OnConfigChange(func(fsnotify.Event) {
			next, err := unmarshalGenerator(v)
			if err != nil {
				log.Warn("ignoring generator config reload", zap.Error(err))
				return
			}
			holder.current.Store(next)
			log.Info("generator config reloaded")
		})
		v.WatchConfig()
	}

	return holder, nil
}

func unmarshalGenerator(v *viper.Viper) (GeneratorConfig, error) {
	cfg := DefaultGeneratorConfig()
	if err := v.UnmarshalKey("generator", &cfg); err != nil {
		return GeneratorConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GeneratorConfig{}, err
	}
	return cfg, nil
}

// Current returns the latest validated configuration.
func (h *GeneratorConfigHolder) Current() GeneratorConfig {
	return h.current.Load().(GeneratorConfig)
}
