package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/cli"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  cli.Command
	}{
		{"1", cli.CommandDeposit},
		{"deposit", cli.CommandDeposit},
		{"DEPOSIT", cli.CommandDeposit},
		{"2", cli.CommandWithdraw},
		{"withdraw", cli.CommandWithdraw},
		{"3", cli.CommandBalance},
		{" balance ", cli.CommandBalance},
		{"4", cli.CommandHistory},
		{"history", cli.CommandHistory},
		{"5", cli.CommandExit},
		{"exit", cli.CommandExit},
		{"quit", cli.CommandExit},
		{"", cli.CommandUnknown},
		{"6", cli.CommandUnknown},
		{"transfer", cli.CommandUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cli.ParseCommand(tc.input), "input %q", tc.input)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	t.Run("dollars to minor units", func(t *testing.T) {
		amount, err := cli.ParseAmount("100")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), amount)

		amount, err = cli.ParseAmount("12.34")
		require.NoError(t, err)
		assert.Equal(t, int64(1234), amount)

		amount, err = cli.ParseAmount(" 0.01 ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), amount)
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, input := range []string{"abc", "", "0", "-5", "0.004"} {
			_, err := cli.ParseAmount(input)
			assert.ErrorIs(t, err, domain.ErrInvalidAmount, "input %q", input)
		}
	})
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100.00", cli.FormatAmount(10000))
	assert.Equal(t, "0.01", cli.FormatAmount(1))
	assert.Equal(t, "0.00", cli.FormatAmount(0))
	assert.Equal(t, "12.34", cli.FormatAmount(1234))
}
