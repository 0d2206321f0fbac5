// Package churn derives churn records from the monthly attribute table.
package churn

import (
	"sort"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
	"github.com/smallbiznis/teleforge/pkg/month"
)

// FromAttributeRows scans the attribute table for each account's first
// Suspended/Closed month. Output is sorted by account id; accounts that
// never leave Active emit nothing.
func FromAttributeRows(rows []accountdomain.AttributeRow) []generatordomain.ChurnRecord {
	first := make(map[int64]generatordomain.ChurnRecord)
	for _, row := range rows {
		if !row.NonActive() {
			continue
		}
		m := month.Norm(row.Month)
		if existing, ok := first[row.ServiceAccountID]; ok && !month.Before(m, existing.ChurnMonth) {
			continue
		}
		first[row.ServiceAccountID] = generatordomain.ChurnRecord{
			AccountID:  row.ServiceAccountID,
			ChurnMonth: m,
			Churned:    1,
		}
	}

	out := make([]generatordomain.ChurnRecord, 0, len(first))
	for _, rec := range first {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out
}
