package panel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-panel/models"
)

func sessionWithBalance(t *testing.T, host *fakeHost, balance string) *Session {
	t.Helper()
	host.balance = dec(balance)
	s := newTestSession(t, host)
	_, err := s.RefreshBalance(context.Background())
	require.NoError(t, err)
	return s
}

func TestQuickAmounts(t *testing.T) {
	s := sessionWithBalance(t, newFakeHost(), "1000.50")

	got := s.QuickAmounts()

	want := []struct {
		percent int
		amount  string
	}{{25, "250.13"}, {50, "500.25"}, {75, "750.38"}, {100, "1000.50"}}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.percent, got[i].Percent)
		assert.True(t, got[i].Amount.Equal(dec(w.amount)), "%d%%: got %s want %s", w.percent, got[i].Amount, w.amount)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 12.50 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("12.5")))

	for _, text := range []string{"", "abc", "NaN", "Infinity", "12,50"} {
		_, err := ParseAmount(text)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", text)
	}
}

func TestWithdrawRejectsLocally(t *testing.T) {
	host := newFakeHost()
	s := sessionWithBalance(t, host, "100")

	assert.ErrorIs(t, s.Withdraw(context.Background(), dec("0")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Withdraw(context.Background(), dec("-5")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Withdraw(context.Background(), dec("100.01")), ErrAmountExceedsBalance)
	assert.Empty(t, host.withdrawals)
}

func TestWithdrawFullBalance(t *testing.T) {
	host := newFakeHost()
	s := sessionWithBalance(t, host, "100")
	s.OpenWithdraw()

	require.NoError(t, s.Withdraw(context.Background(), dec("100")))

	require.Len(t, host.withdrawals, 1)
	assert.False(t, s.WithdrawOpen())
	assert.True(t, s.Balance().IsZero(), "balance is refreshed from the host")
	assert.Equal(t, 2, host.balanceCalls)
}

func TestWithdrawAckAfterReopenLeavesViewAlone(t *testing.T) {
	host := newFakeHost()
	s := sessionWithBalance(t, host, "100")
	s.OpenWithdraw()
	host.onWithdraw = func() {
		openStaffPanel(s, nil, nil)
		s.OpenWithdraw()
	}

	require.NoError(t, s.Withdraw(context.Background(), dec("40")))

	require.Len(t, host.withdrawals, 1)
	assert.True(t, s.WithdrawOpen())
	assert.True(t, s.Balance().IsZero(), "reopened panel has not loaded a balance yet")
}

func TestWithdrawHostRejects(t *testing.T) {
	host := newFakeHost()
	host.withdrawAck = models.AckResponse{Success: false, Error: "insufficient funds"}
	s := sessionWithBalance(t, host, "100")
	s.OpenWithdraw()

	err := s.Withdraw(context.Background(), dec("40"))

	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, "insufficient funds", hostErr.Message)
	assert.True(t, s.WithdrawOpen())
	assert.True(t, s.Balance().Equal(dec("100")))
}

func TestWithdrawGenericFailureMessage(t *testing.T) {
	host := newFakeHost()
	host.withdrawAck = models.AckResponse{Success: false}
	s := sessionWithBalance(t, host, "100")

	err := s.Withdraw(context.Background(), dec("40"))

	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, msgWithdrawFailed, hostErr.Message)
}

func TestWithdrawSucceedsWhenRefreshFails(t *testing.T) {
	host := newFakeHost()
	s := sessionWithBalance(t, host, "100")
	host.balanceErr = errConnLost

	require.NoError(t, s.Withdraw(context.Background(), dec("30")))
	assert.True(t, s.Balance().Equal(dec("100")), "stale balance is kept until the next refresh")
}
