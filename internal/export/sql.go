package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
)

// SQLOptions controls the batched INSERT writer.
type SQLOptions struct {
	// Table is the fully qualified destination table.
	Table string
	// BatchSize is the number of rows per INSERT statement.
	BatchSize int
}

func (o SQLOptions) withDefaults() SQLOptions {
	if o.Table == "" {
		o.Table = "account_attributes_monthly"
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	return o
}

// WriteAttributeInserts writes multi-row INSERT statements for the account
// attribute table, batched so each statement stays warehouse-friendly.
func WriteAttributeInserts(w io.Writer, rows []accountdomain.AttributeRow, opts SQLOptions) error {
	opts = opts.withDefaults()

	header := fmt.Sprintf("INSERT INTO %s\n(%s)\nVALUES\n",
		opts.Table, strings.Join(attributeHeader, ", "))

	for start := 0; start < len(rows); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		for i, r := range rows[start:end] {
			sep := ",\n"
			if start+i == end-1 {
				sep = ";\n\n"
			}
			if _, err := io.WriteString(w, sqlTuple(r)+sep); err != nil {
				return err
			}
		}
	}
	return nil
}

func sqlTuple(r accountdomain.AttributeRow) string {
	vals := []string{
		quote(r.Month.Format(monthLayout)),
		strconv.FormatInt(r.EnterpriseAccountID, 10),
		quote(r.Company),
		strconv.FormatInt(r.EABrandID, 10),
		quote(r.EABrandName),
		quote(r.EAUBrandID),
		quote(r.EAUBrandDescription),
		quote(r.EAAcctStatus),
		strconv.FormatInt(r.ServiceAccountID, 10),
		strconv.FormatInt(r.SABrandID, 10),
		quote(r.SABrandName),
		quote(r.SAUBrandID),
		quote(r.SAUBrandDescription),
		quote(r.SAAcctStatus),
		strconv.FormatInt(r.PackageID, 10),
		quote(r.PackageName),
		quote(r.CatalogPackageID),
		quote(r.CatalogPackageName),
		strings.ToUpper(strconv.FormatBool(r.IsTester)),
		strconv.FormatInt(r.TierID, 10),
		quote(r.TierName),
		quote(r.EditionName),
		quote(r.ExternalAccountID),
		quote(r.BAN),
		quote(r.OpcoID),
	}
	return "(" + strings.Join(vals, ", ") + ")"
}

// quote wraps s in single quotes, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
