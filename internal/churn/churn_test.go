package churn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
)

func mon(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func row(sa int64, m time.Time, status string) accountdomain.AttributeRow {
	return accountdomain.AttributeRow{
		Month:            m,
		ServiceAccountID: sa,
		SAAcctStatus:     status,
	}
}

func TestFromAttributeRows(t *testing.T) {
	rows := []accountdomain.AttributeRow{
		row(30, mon(2023, time.March), accountdomain.StatusActive),
		row(30, mon(2023, time.April), accountdomain.StatusActive),

		// out of order on purpose, the later Closed row arrives first
		row(10, mon(2023, time.June), accountdomain.StatusClosed),
		row(10, mon(2023, time.January), accountdomain.StatusActive),
		row(10, mon(2023, time.February), accountdomain.StatusSuspended),

		row(20, mon(2023, time.May), accountdomain.StatusClosed),
	}

	got := FromAttributeRows(rows)
	require.Len(t, got, 2)

	assert.Equal(t, int64(10), got[0].AccountID)
	assert.Equal(t, mon(2023, time.February), got[0].ChurnMonth)
	assert.Equal(t, 1, got[0].Churned)

	assert.Equal(t, int64(20), got[1].AccountID)
	assert.Equal(t, mon(2023, time.May), got[1].ChurnMonth)
}

func TestFromAttributeRowsAllActive(t *testing.T) {
	rows := []accountdomain.AttributeRow{
		row(1, mon(2024, time.January), accountdomain.StatusActive),
		row(1, mon(2024, time.February), accountdomain.StatusActive),
	}
	assert.Empty(t, FromAttributeRows(rows))
}
