package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromGatewayCode(t *testing.T) {
	testCases := []struct {
		Name     string
		Code     string
		Expected TransactionStatus
	}{
		{Name: "Settlement", Code: "200", Expected: StatusSuccess},
		{Name: "Pending", Code: "201", Expected: StatusPending},
		{Name: "Denied", Code: "406", Expected: StatusFailed},
		{Name: "Expired or cancelled", Code: "407", Expected: StatusCancelled},
		{Name: "Unknown code", Code: "500", Expected: StatusFailed},
		{Name: "Empty code", Code: "", Expected: StatusFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, StatusFromGatewayCode(tc.Code))
		})
	}
}

func TestCanApplyStatus(t *testing.T) {
	testCases := []struct {
		Name     string
		Trx      Transaction
		To       TransactionStatus
		Expected bool
	}{
		{
			Name:     "Pending transaction accepts success",
			Trx:      Transaction{Status: StatusPending},
			To:       StatusSuccess,
			Expected: true,
		},
		{
			Name:     "Unconfirmed success can still be overwritten",
			Trx:      Transaction{Status: StatusSuccess},
			To:       StatusFailed,
			Expected: true,
		},
		{
			Name:     "Confirmed success rejects failed",
			Trx:      Transaction{Status: StatusSuccess, IsConfirmed: true},
			To:       StatusFailed,
			Expected: false,
		},
		{
			Name:     "Confirmed success rejects pending",
			Trx:      Transaction{Status: StatusSuccess, IsConfirmed: true},
			To:       StatusPending,
			Expected: false,
		},
		{
			Name:     "Confirmed success accepts redundant success",
			Trx:      Transaction{Status: StatusSuccess, IsConfirmed: true},
			To:       StatusSuccess,
			Expected: true,
		},
		{
			Name:     "Confirmed pending can still settle",
			Trx:      Transaction{Status: StatusPending, IsConfirmed: true},
			To:       StatusSuccess,
			Expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Trx.CanApplyStatus(tc.To))
		})
	}
}

func TestCanConfirm(t *testing.T) {
	assert.True(t, Transaction{}.CanConfirm())
	assert.False(t, Transaction{IsConfirmed: true}.CanConfirm())
}
