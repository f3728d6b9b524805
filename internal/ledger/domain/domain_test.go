package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateIBANFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^TR32 0001 0001 \d{11}$`)
	for range 50 {
		require.Regexp(t, pattern, GenerateIBAN())
	}
}

func TestGenerateAccountNumberFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^\d{10}$`)
	for range 50 {
		require.Regexp(t, pattern, GenerateAccountNumber())
	}
}

func TestGenerateCardNumberIsMasked(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^4\*\*\* \*\*\*\* \*\*\*\* \d{4}$`)
	for range 50 {
		require.Regexp(t, pattern, GenerateCardNumber())
	}
}

func TestValidAccountType(t *testing.T) {
	t.Parallel()

	require.True(t, ValidAccountType(AccountChecking))
	require.True(t, ValidAccountType(AccountSavings))
	require.True(t, ValidAccountType(AccountInvestment))
	require.False(t, ValidAccountType("offshore"))
	require.False(t, ValidAccountType(""))
}

func TestBillTypes(t *testing.T) {
	t.Parallel()

	for _, known := range []string{"electricity", "gas", "water", "telecom", "internet"} {
		require.True(t, BillTypes[known])
	}
	require.False(t, BillTypes["netflix"])
}
