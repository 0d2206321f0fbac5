// Package export serializes generated datasets to CSV and SQL files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
)

const monthLayout = "2006-01-02"

var usageHeader = []string{
	"USERID",
	"MONTH",
	"PHONE_TOTAL_CALLS",
	"PHONE_TOTAL_MINUTES_OF_USE",
	"VOICE_CALLS",
	"VOICE_MINS",
	"FAX_CALLS",
	"FAX_MINS",
	"PHONE_TOTAL_NUM_INBOUND_CALLS",
	"PHONE_TOTAL_NUM_OUTBOUND_CALLS",
	"PHONE_TOTAL_INBOUND_MIN",
	"PHONE_TOTAL_OUTBOUND_MIN",
	"OUT_VOICE_CALLS",
	"IN_VOICE_CALLS",
	"OUT_VOICE_MINS",
	"IN_VOICE_MINS",
	"OUT_FAX_CALLS",
	"IN_FAX_CALLS",
	"OUT_FAX_MINS",
	"IN_FAX_MINS",
	"PHONE_MAU",
	"CALL_MAU",
	"FAX_MAU",
	"HARDPHONE_CALLS",
	"SOFTPHONE_CALLS",
	"MOBILE_CALLS",
	"MOBILE_ANDROID_CALLS",
	"MOBILE_IOS_CALLS",
}

// WriteUsageCSV writes the monthly usage table with one row per
// account-month, columns in warehouse schema order.
func WriteUsageCSV(w io.Writer, records []generatordomain.UsageRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(usageHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.AccountID, 10),
			rec.Month.Format(monthLayout),
			strconv.FormatInt(rec.TotalCalls, 10),
			strconv.FormatInt(rec.TotalMinutes, 10),
			strconv.FormatInt(rec.VoiceCalls, 10),
			strconv.FormatInt(rec.VoiceMins, 10),
			strconv.FormatInt(rec.FaxCalls, 10),
			strconv.FormatInt(rec.FaxMins, 10),
			strconv.FormatInt(rec.InboundCalls, 10),
			strconv.FormatInt(rec.OutboundCalls, 10),
			strconv.FormatInt(rec.InboundMins, 10),
			strconv.FormatInt(rec.OutboundMins, 10),
			strconv.FormatInt(rec.OutVoiceCalls, 10),
			strconv.FormatInt(rec.InVoiceCalls, 10),
			strconv.FormatInt(rec.OutVoiceMins, 10),
			strconv.FormatInt(rec.InVoiceMins, 10),
			strconv.FormatInt(rec.OutFaxCalls, 10),
			strconv.FormatInt(rec.InFaxCalls, 10),
			strconv.FormatInt(rec.OutFaxMins, 10),
			strconv.FormatInt(rec.InFaxMins, 10),
			strconv.FormatInt(rec.PhoneMAU, 10),
			strconv.FormatInt(rec.CallMAU, 10),
			strconv.FormatInt(rec.FaxMAU, 10),
			strconv.FormatInt(rec.HardphoneCalls, 10),
			strconv.FormatInt(rec.SoftphoneCalls, 10),
			strconv.FormatInt(rec.MobileCalls, 10),
			strconv.FormatInt(rec.MobileAndroidCalls, 10),
			strconv.FormatInt(rec.MobileIOSCalls, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var churnHeader = []string{"USERID", "CHURN_DATE", "CHURNED"}

// WriteChurnCSV writes one row per churned account.
func WriteChurnCSV(w io.Writer, records []generatordomain.ChurnRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(churnHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.AccountID, 10),
			rec.ChurnMonth.Format(monthLayout),
			strconv.Itoa(rec.Churned),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var attributeHeader = []string{
	"MONTH",
	"ENTERPRISE_ACCOUNT_ID",
	"COMPANY",
	"EA_BRAND_ID",
	"EA_BRAND_NAME",
	"EA_UBRAND_ID",
	"EA_UBRAND_DESCRIPTION",
	"EA_ACCT_STATUS",
	"SERVICE_ACCOUNT_ID",
	"SA_BRAND_ID",
	"SA_BRAND_NAME",
	"SA_UBRAND_ID",
	"SA_UBRAND_DESCRIPTION",
	"SA_ACCT_STATUS",
	"PACKAGE_ID",
	"PACKAGE_NAME",
	"CATALOG_PACKAGE_ID",
	"CATALOG_PACKAGE_NAME",
	"IS_TESTER",
	"TIER_ID",
	"TIER_NAME",
	"EDITION_NAME",
	"EXTERNAL_ACCOUNT_ID",
	"BAN",
	"OPCO_ID",
}

// WriteAttributesCSV writes the monthly account attribute table.
func WriteAttributesCSV(w io.Writer, rows []accountdomain.AttributeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(attributeHeader); err != nil {
		return err
	}
	for _, r := range rows {
		row := attributeValues(r, func(t time.Time) string { return t.Format(monthLayout) })
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func attributeValues(r accountdomain.AttributeRow, month func(time.Time) string) []string {
	return []string{
		month(r.Month),
		strconv.FormatInt(r.EnterpriseAccountID, 10),
		r.Company,
		strconv.FormatInt(r.EABrandID, 10),
		r.EABrandName,
		r.EAUBrandID,
		r.EAUBrandDescription,
		r.EAAcctStatus,
		strconv.FormatInt(r.ServiceAccountID, 10),
		strconv.FormatInt(r.SABrandID, 10),
		r.SABrandName,
		r.SAUBrandID,
		r.SAUBrandDescription,
		r.SAAcctStatus,
		strconv.FormatInt(r.PackageID, 10),
		r.PackageName,
		r.CatalogPackageID,
		r.CatalogPackageName,
		strconv.FormatBool(r.IsTester),
		strconv.FormatInt(r.TierID, 10),
		r.TierName,
		r.EditionName,
		r.ExternalAccountID,
		r.BAN,
		r.OpcoID,
	}
}
