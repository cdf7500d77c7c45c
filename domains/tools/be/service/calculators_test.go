package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func dollars(n int64) Money {
	return Money(n * 100)
}

func newAt(t *testing.T, today string) *service {
	t.Helper()

	now := date(t, today).Add(15 * time.Hour)
	return &service{now: func() time.Time { return now }}
}

func TestDeadlines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sale           string
		identification string
		exchange       string
	}{
		{sale: "2026-01-15", identification: "2026-03-01", exchange: "2026-07-14"},
		{sale: "2024-01-15", identification: "2024-02-29", exchange: "2024-07-13"},
		{sale: "2026-11-20", identification: "2027-01-04", exchange: "2027-05-19"},
	}

	for _, tc := range cases {
		t.Run(tc.sale, func(t *testing.T) {
			t.Parallel()

			got := New().Deadlines(date(t, tc.sale).Add(18 * time.Hour))
			require.Equal(t, date(t, tc.sale), got.SaleDate)
			require.Equal(t, date(t, tc.identification), got.IdentificationDeadline)
			require.Equal(t, date(t, tc.exchange), got.ExchangeDeadline)
		})
	}
}

func TestTimeline(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		today     string
		phase     Phase
		elapsed   int
		toIdent   int
		toClosing int
	}{
		{name: "before sale", today: "2026-01-10", phase: PhaseBeforeSale, elapsed: 0, toIdent: 50, toClosing: 185},
		{name: "sale day", today: "2026-01-15", phase: PhaseIdentification, elapsed: 0, toIdent: 45, toClosing: 180},
		{name: "last identification day", today: "2026-03-01", phase: PhaseIdentification, elapsed: 45, toIdent: 0, toClosing: 135},
		{name: "acquisition", today: "2026-03-02", phase: PhaseAcquisition, elapsed: 46, toIdent: 0, toClosing: 134},
		{name: "closed", today: "2026-07-15", phase: PhaseClosed, elapsed: 181, toIdent: 0, toClosing: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := newAt(t, tc.today).Timeline(date(t, "2026-01-15"))
			require.Equal(t, tc.phase, got.Phase)
			require.Equal(t, tc.elapsed, got.DaysElapsed)
			require.Equal(t, tc.toIdent, got.DaysToIdentification)
			require.Equal(t, tc.toClosing, got.DaysToExchange)
		})
	}
}

func TestCheckIdentification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		identified []Money
		rule       Rule
		three      bool
		twoHundred bool
		minimum    Money
	}{
		{
			name:       "three properties of any value",
			identified: []Money{dollars(900_000), dollars(800_000), dollars(700_000)},
			rule:       RuleThreeProperty,
			three:      true,
			twoHundred: false,
		},
		{
			name:       "four properties within 200 percent",
			identified: []Money{dollars(400_000), dollars(400_000), dollars(400_000), dollars(500_000)},
			rule:       RuleTwoHundredPercent,
			twoHundred: true,
		},
		{
			name:       "exactly 200 percent",
			identified: []Money{dollars(500_000), dollars(500_000), dollars(500_000), dollars(500_000)},
			rule:       RuleTwoHundredPercent,
			twoHundred: true,
		},
		{
			name:       "falls back to 95 percent",
			identified: []Money{dollars(600_000), dollars(600_000), dollars(600_000), dollars(600_001)},
			rule:       RuleNinetyFivePercent,
			minimum:    Money(228_000_095),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().CheckIdentification(dollars(1_000_000), tc.identified)
			require.NoError(t, err)
			require.Equal(t, tc.rule, got.Rule)
			require.Equal(t, tc.three, got.ThreeProperty)
			require.Equal(t, tc.twoHundred, got.TwoHundredPercent)
			require.Equal(t, dollars(2_000_000), got.TwoHundredLimit)
			require.Equal(t, tc.minimum, got.MinimumAcquisition)
			require.Equal(t, len(tc.identified), got.Count)
		})
	}
}

func TestCheckIdentificationValidation(t *testing.T) {
	t.Parallel()

	_, err := New().CheckIdentification(0, nil)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Fields, "relinquished")
	require.Contains(t, validation.Fields, "values")
	require.Equal(t, []string{
		"Enter the relinquished property sale price.",
		"List at least one identified property value.",
	}, validation.Messages())
}

func TestBoot(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       BootInput
		cash     Money
		mortgage Money
		deferred bool
	}{
		{
			name: "trade up with equal debt",
			in: BootInput{
				RelinquishedPrice: dollars(1_000_000), RelinquishedDebt: dollars(400_000),
				ReplacementPrice: dollars(1_200_000), ReplacementDebt: dollars(600_000),
			},
			deferred: true,
		},
		{
			name: "trade down leaves cash boot",
			in: BootInput{
				RelinquishedPrice: dollars(1_000_000), RelinquishedDebt: dollars(400_000),
				ReplacementPrice: dollars(900_000), ReplacementDebt: dollars(400_000),
			},
			cash: dollars(100_000),
		},
		{
			name: "debt relief is mortgage boot",
			in: BootInput{
				RelinquishedPrice: dollars(1_000_000), RelinquishedDebt: dollars(500_000),
				ReplacementPrice: dollars(800_000), ReplacementDebt: dollars(300_000),
			},
			mortgage: dollars(200_000),
		},
		{
			name: "added cash offsets debt relief",
			in: BootInput{
				RelinquishedPrice: dollars(1_000_000), RelinquishedDebt: dollars(500_000),
				ReplacementPrice: dollars(1_000_000), ReplacementDebt: dollars(300_000),
			},
			deferred: true,
		},
		{
			name: "cash and mortgage boot together",
			in: BootInput{
				RelinquishedPrice: dollars(1_000_000), RelinquishedDebt: dollars(300_000),
				ReplacementPrice: dollars(700_000), ReplacementDebt: dollars(100_000),
			},
			cash:     dollars(100_000),
			mortgage: dollars(200_000),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Boot(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.cash, got.CashBoot)
			require.Equal(t, tc.mortgage, got.MortgageBoot)
			require.Equal(t, tc.cash+tc.mortgage, got.TotalBoot)
			require.Equal(t, tc.deferred, got.FullyDeferred)
		})
	}
}

func TestBootValidation(t *testing.T) {
	t.Parallel()

	_, err := New().Boot(BootInput{RelinquishedPrice: dollars(100), RelinquishedDebt: dollars(200)})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Fields, "relinquishedDebt")
	require.Contains(t, validation.Fields, "replacementPrice")
}

func TestIdentificationLetter(t *testing.T) {
	t.Parallel()

	letter, err := New().IdentificationLetter(LetterInput{
		Taxpayer:            "  Dana Reyes ",
		Intermediary:        "Trinity Exchange Services",
		RelinquishedAddress: "100 Main St, Fort Worth, TX",
		SaleDate:            date(t, "2026-01-15"),
		Properties:          []string{"1 Elm St, Keller, TX", "", "2 Oak Ave, Denton, TX"},
	})
	require.NoError(t, err)
	require.Equal(t, date(t, "2026-03-01"), letter.Deadline)
	require.Empty(t, letter.Warning)
	require.Contains(t, letter.Body, "To: Trinity Exchange Services")
	require.Contains(t, letter.Body, "transferred on January 15, 2026")
	require.Contains(t, letter.Body, "1. 1 Elm St, Keller, TX\n2. 2 Oak Ave, Denton, TX\n")
	require.Contains(t, letter.Body, "on or before March 1, 2026")
	require.Contains(t, letter.Body, "Signed,\nDana Reyes\n")
}

func TestIdentificationLetterWarnsPastThreeProperties(t *testing.T) {
	t.Parallel()

	letter, err := New().IdentificationLetter(LetterInput{
		Taxpayer:            "Dana Reyes",
		Intermediary:        "Trinity Exchange Services",
		RelinquishedAddress: "100 Main St",
		SaleDate:            date(t, "2026-01-15"),
		Properties:          []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, letter.Warning)
}

func TestIdentificationLetterValidation(t *testing.T) {
	t.Parallel()

	_, err := New().IdentificationLetter(LetterInput{Properties: []string{" "}})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 5)
}

func TestMoney(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Money
		text string
	}{
		{raw: "1,250,000", want: dollars(1_250_000), text: "$1,250,000"},
		{raw: "$99.50", want: Money(9950), text: "$99.50"},
		{raw: " 0.07 ", want: Money(7), text: "$0.07"},
		{raw: "999", want: dollars(999), text: "$999"},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.raw)
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got)
		require.Equal(t, tc.text, got.String())
	}

	for _, raw := range []string{"", "abc", "-5", "NaN"} {
		_, err := ParseMoney(raw)
		require.Error(t, err, raw)
	}
}
