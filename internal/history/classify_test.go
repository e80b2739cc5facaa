package history

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcbank-client/internal/domain"
)

func rawTime(t time.Time) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%q", t.Format("2006-01-02T15:04:05")))
}

func tx(op domain.OperationType, source string, occurredAt time.Time) domain.Transaction {
	return domain.Transaction{
		ID:              "tx-1",
		OccurredAt:      rawTime(occurredAt),
		OperationType:   op,
		Amount:          decimal.NewFromInt(10),
		Status:          domain.StatusCompleted,
		SourceAccountID: source,
	}
}

func TestIsDebitRequiresDebitTypeAndMatchingOrigin(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		op     domain.OperationType
		source string
		want   bool
	}{
		{"withdrawal from viewed account", domain.OpWithdrawal, "acc-1", true},
		{"transfer out from viewed account", domain.OpTransferOut, "acc-1", true},
		{"internal transfer from viewed account", domain.OpInternalTransfer, "acc-1", true},
		{"interbank transfer from viewed account", domain.OpInterbankTransfer, "acc-1", true},
		{"reversal from viewed account", domain.OpReversal, "acc-1", true},
		{"transfer out from another account", domain.OpTransferOut, "acc-2", false},
		{"deposit is never a debit", domain.OpDeposit, "acc-1", false},
		{"incoming interbank is a credit", domain.OpTransferIn, "acc-2", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyAt([]domain.Transaction{tx(tc.op, tc.source, now)}, "acc-1", now)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].IsDebit)
		})
	}
}

func TestDisplayTypeMapping(t *testing.T) {
	now := time.Now()

	interbank := ClassifyAt([]domain.Transaction{tx(domain.OpInterbankTransfer, "acc-1", now)}, "acc-1", now)
	assert.Equal(t, "OUTGOING INTERBANK", interbank[0].DisplayType)

	incoming := ClassifyAt([]domain.Transaction{tx(domain.OpTransferIn, "acc-2", now)}, "acc-1", now)
	assert.Equal(t, "INCOMING INTERBANK", incoming[0].DisplayType)

	withdrawal := ClassifyAt([]domain.Transaction{tx(domain.OpWithdrawal, "acc-1", now)}, "acc-1", now)
	assert.Equal(t, "WITHDRAWAL", withdrawal[0].DisplayType)
}

func TestRefundEligibility(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*domain.Transaction)
		age    time.Duration
		want   bool
	}{
		{"recent transfer out", func(*domain.Transaction) {}, time.Hour, true},
		{"outside the window", func(*domain.Transaction) {}, 25 * time.Hour, false},
		{"already reversed", func(tx *domain.Transaction) { tx.Status = domain.StatusReversed }, time.Hour, false},
		{"already returned", func(tx *domain.Transaction) { tx.Status = domain.StatusReturned }, time.Hour, false},
		{"not a debit for the viewer", func(tx *domain.Transaction) { tx.SourceAccountID = "acc-2" }, time.Hour, false},
		{"withdrawals are not refundable", func(tx *domain.Transaction) { tx.OperationType = domain.OpWithdrawal }, time.Hour, false},
		{"internal transfers are not refundable", func(tx *domain.Transaction) { tx.OperationType = domain.OpInternalTransfer }, time.Hour, false},
		{"interbank transfers are refundable", func(tx *domain.Transaction) { tx.OperationType = domain.OpInterbankTransfer }, time.Hour, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := tx(domain.OpTransferOut, "acc-1", now.Add(-tc.age))
			tc.mutate(&record)
			got := ClassifyAt([]domain.Transaction{record}, "acc-1", now)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].IsRefundable)
		})
	}
}

func TestOrderingIsNewestFirstAndStable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	a := tx(domain.OpDeposit, "acc-2", now.Add(-3*time.Hour))
	a.ID = "old"
	b := tx(domain.OpDeposit, "acc-2", now.Add(-1*time.Hour))
	b.ID = "new"
	tieFirst := tx(domain.OpDeposit, "acc-2", now.Add(-2*time.Hour))
	tieFirst.ID = "tie-first"
	tieSecond := tx(domain.OpDeposit, "acc-2", now.Add(-2*time.Hour))
	tieSecond.ID = "tie-second"

	got := ClassifyAt([]domain.Transaction{a, tieFirst, tieSecond, b}, "acc-1", now)
	require.Len(t, got, 4)
	assert.Equal(t, "new", got[0].Raw.ID)
	assert.Equal(t, "tie-first", got[1].Raw.ID, "ties keep fetch order")
	assert.Equal(t, "tie-second", got[2].Raw.ID)
	assert.Equal(t, "old", got[3].Raw.ID)
}

func TestParseTimestampEncodings(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	t.Run("structured tuple", func(t *testing.T) {
		got := parseTimestamp(json.RawMessage(`[2026, 3, 10, 14, 30, 45]`), fallback)
		assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 45, 0, time.Local), got)
	})

	t.Run("short tuple defaults time fields", func(t *testing.T) {
		got := parseTimestamp(json.RawMessage(`[2026, 3, 10]`), fallback)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), got)
	})

	t.Run("zoneless string is local time", func(t *testing.T) {
		got := parseTimestamp(json.RawMessage(`"2026-03-10T14:30:45"`), fallback)
		assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 45, 0, time.Local), got)
	})

	t.Run("zoned string keeps its offset", func(t *testing.T) {
		got := parseTimestamp(json.RawMessage(`"2026-03-10T14:30:45Z"`), fallback)
		assert.True(t, got.Equal(time.Date(2026, 3, 10, 14, 30, 45, 0, time.UTC)))
	})

	t.Run("epoch milliseconds", func(t *testing.T) {
		want := time.Date(2026, 3, 10, 14, 30, 45, 0, time.UTC)
		got := parseTimestamp(json.RawMessage(fmt.Sprintf("%d", want.UnixMilli())), fallback)
		assert.True(t, got.Equal(want))
	})

	t.Run("absent timestamp falls back", func(t *testing.T) {
		assert.Equal(t, fallback, parseTimestamp(nil, fallback))
	})

	t.Run("garbage falls back", func(t *testing.T) {
		assert.Equal(t, fallback, parseTimestamp(json.RawMessage(`"not a date"`), fallback))
	})
}
