// Package domain contains the simulated account population models.
package domain

import (
	"time"

	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
)

// Account statuses as they appear in the attribute table.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusClosed    = "Closed"
)

// BrandRef, PackageRef and TierRef are catalog entries sampled once per
// account. They come from configuration, not from a database.
type BrandRef struct {
	ID   int64  `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
}

type UBrandRef struct {
	ID          string `mapstructure:"id" json:"id"`
	Description string `mapstructure:"description" json:"description"`
}

type PackageRef struct {
	ID          int64  `mapstructure:"id" json:"id"`
	Name        string `mapstructure:"name" json:"name"`
	CatalogID   string `mapstructure:"catalog_id" json:"catalog_id"`
	CatalogName string `mapstructure:"catalog_name" json:"catalog_name"`
}

type TierRef struct {
	ID      int64  `mapstructure:"id" json:"id"`
	Name    string `mapstructure:"name" json:"name"`
	Edition string `mapstructure:"edition" json:"edition"`
}

// Account is one simulated subscriber: fixed attributes plus the lifecycle
// window the usage engine consumes.
type Account struct {
	EnterpriseAccountID int64
	ServiceAccountID    int64
	Company             string
	EABrand             BrandRef
	EAUBrand            UBrandRef
	SABrand             BrandRef
	SAUBrand            UBrandRef
	Package             PackageRef
	Tier                TierRef
	IsTester            bool
	ExternalAccountID   string
	BAN                 string
	OpcoID              string

	// FinalStatus is the non-active status recorded at the churn month;
	// empty while the account stays open.
	FinalStatus string

	Lifecycle generatordomain.AccountLifecycle
}

// AttributeRow is one month of the account attribute table. Only the
// service-account status varies over time.
type AttributeRow struct {
	Month               time.Time `gorm:"column:month;primaryKey" json:"month"`
	EnterpriseAccountID int64     `gorm:"column:enterprise_account_id;primaryKey" json:"enterprise_account_id"`
	Company             string    `gorm:"column:company" json:"company"`
	EABrandID           int64     `gorm:"column:ea_brand_id" json:"ea_brand_id"`
	EABrandName         string    `gorm:"column:ea_brand_name" json:"ea_brand_name"`
	EAUBrandID          string    `gorm:"column:ea_ubrand_id" json:"ea_ubrand_id"`
	EAUBrandDescription string    `gorm:"column:ea_ubrand_description" json:"ea_ubrand_description"`
	EAAcctStatus        string    `gorm:"column:ea_acct_status" json:"ea_acct_status"`
	ServiceAccountID    int64     `gorm:"column:service_account_id" json:"service_account_id"`
	SABrandID           int64     `gorm:"column:sa_brand_id" json:"sa_brand_id"`
	SABrandName         string    `gorm:"column:sa_brand_name" json:"sa_brand_name"`
	SAUBrandID          string    `gorm:"column:sa_ubrand_id" json:"sa_ubrand_id"`
	SAUBrandDescription string    `gorm:"column:sa_ubrand_description" json:"sa_ubrand_description"`
	SAAcctStatus        string    `gorm:"column:sa_acct_status" json:"sa_acct_status"`
	PackageID           int64     `gorm:"column:package_id" json:"package_id"`
	PackageName         string    `gorm:"column:package_name" json:"package_name"`
	CatalogPackageID    string    `gorm:"column:catalog_package_id" json:"catalog_package_id"`
	CatalogPackageName  string    `gorm:"column:catalog_package_name" json:"catalog_package_name"`
	IsTester            bool      `gorm:"column:is_tester" json:"is_tester"`
	TierID              int64     `gorm:"column:tier_id" json:"tier_id"`
	TierName            string    `gorm:"column:tier_name" json:"tier_name"`
	EditionName         string    `gorm:"column:edition_name" json:"edition_name"`
	ExternalAccountID   string    `gorm:"column:external_account_id" json:"external_account_id"`
	BAN                 string    `gorm:"column:ban" json:"ban"`
	OpcoID              string    `gorm:"column:opco_id" json:"opco_id"`
}

// TableName sets the database table name.
func (AttributeRow) TableName() string { return "account_attributes_monthly" }

// NonActive reports whether the row carries a churn-terminal status.
func (r AttributeRow) NonActive() bool {
	return r.SAAcctStatus == StatusSuspended || r.SAAcctStatus == StatusClosed
}
