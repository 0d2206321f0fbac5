// Package domain defines the engine's input and output records.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/smallbiznis/teleforge/internal/profile"
	"github.com/smallbiznis/teleforge/pkg/month"
)

var ErrInvalidLifecycle = errors.New("invalid_lifecycle")

// AccountLifecycle carries the per-account facts the engine needs. The
// attribute generator produces these; the engine never mutates them.
type AccountLifecycle struct {
	AccountID   int64
	Profile     profile.Profile
	FirstActive time.Time
	LastActive  time.Time // inclusive
	ChurnMonth  *time.Time
}

// Validate enforces first-active <= last-active < churn (when present) and a
// registered profile. Violations indicate an upstream data bug and abort the
// account, never the batch.
func (lc AccountLifecycle) Validate() error {
	if !lc.Profile.Valid() {
		return fmt.Errorf("account %d: %w", lc.AccountID, profile.ErrUnknownProfile)
	}
	if month.Before(lc.LastActive, lc.FirstActive) {
		return fmt.Errorf("account %d: last-active precedes first-active: %w",
			lc.AccountID, ErrInvalidLifecycle)
	}
	if lc.ChurnMonth != nil && !month.Before(lc.LastActive, *lc.ChurnMonth) {
		return fmt.Errorf("account %d: churn month must follow last-active: %w",
			lc.AccountID, ErrInvalidLifecycle)
	}
	return nil
}

// HasChurn reports whether a churn month is scheduled.
func (lc AccountLifecycle) HasChurn() bool { return lc.ChurnMonth != nil }

// UsageRecord is one account-month of synthesized usage. Every sub-metric
// group sums exactly to its parent total and every value is a non-negative
// integer. Immutable once emitted.
type UsageRecord struct {
	AccountID int64     `gorm:"column:userid;primaryKey" json:"userid"`
	Month     time.Time `gorm:"column:month;primaryKey" json:"month"`

	TotalCalls   int64 `gorm:"column:phone_total_calls" json:"phone_total_calls"`
	TotalMinutes int64 `gorm:"column:phone_total_minutes_of_use" json:"phone_total_minutes_of_use"`

	VoiceCalls int64 `gorm:"column:voice_calls" json:"voice_calls"`
	VoiceMins  int64 `gorm:"column:voice_mins" json:"voice_mins"`
	FaxCalls   int64 `gorm:"column:fax_calls" json:"fax_calls"`
	FaxMins    int64 `gorm:"column:fax_mins" json:"fax_mins"`

	InboundCalls  int64 `gorm:"column:phone_total_num_inbound_calls" json:"phone_total_num_inbound_calls"`
	OutboundCalls int64 `gorm:"column:phone_total_num_outbound_calls" json:"phone_total_num_outbound_calls"`
	InboundMins   int64 `gorm:"column:phone_total_inbound_min" json:"phone_total_inbound_min"`
	OutboundMins  int64 `gorm:"column:phone_total_outbound_min" json:"phone_total_outbound_min"`

	OutVoiceCalls int64 `gorm:"column:out_voice_calls" json:"out_voice_calls"`
	InVoiceCalls  int64 `gorm:"column:in_voice_calls" json:"in_voice_calls"`
	OutVoiceMins  int64 `gorm:"column:out_voice_mins" json:"out_voice_mins"`
	InVoiceMins   int64 `gorm:"column:in_voice_mins" json:"in_voice_mins"`
	OutFaxCalls   int64 `gorm:"column:out_fax_calls" json:"out_fax_calls"`
	InFaxCalls    int64 `gorm:"column:in_fax_calls" json:"in_fax_calls"`
	OutFaxMins    int64 `gorm:"column:out_fax_mins" json:"out_fax_mins"`
	InFaxMins     int64 `gorm:"column:in_fax_mins" json:"in_fax_mins"`

	PhoneMAU int64 `gorm:"column:phone_mau" json:"phone_mau"`
	CallMAU  int64 `gorm:"column:call_mau" json:"call_mau"`
	FaxMAU   int64 `gorm:"column:fax_mau" json:"fax_mau"`

	HardphoneCalls     int64 `gorm:"column:hardphone_calls" json:"hardphone_calls"`
	SoftphoneCalls     int64 `gorm:"column:softphone_calls" json:"softphone_calls"`
	MobileCalls        int64 `gorm:"column:mobile_calls" json:"mobile_calls"`
	MobileAndroidCalls int64 `gorm:"column:mobile_android_calls" json:"mobile_android_calls"`
	MobileIOSCalls     int64 `gorm:"column:mobile_ios_calls" json:"mobile_ios_calls"`
}

// TableName sets the database table name.
func (UsageRecord) TableName() string { return "phone_usage_monthly" }

// ChurnRecord marks the month an account went permanently inactive.
type ChurnRecord struct {
	AccountID  int64     `gorm:"column:userid;primaryKey" json:"userid"`
	ChurnMonth time.Time `gorm:"column:churn_date" json:"churn_date"`
	Churned    int       `gorm:"column:churned" json:"churned"`
}

// TableName sets the database table name.
func (ChurnRecord) TableName() string { return "churn_records" }
