package slugs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "canonical", input: "north-richland-hills"},
		{name: "digits", input: "route-66"},
		{name: "empty", input: "", wantErr: "slug is required"},
		{name: "uppercase", input: "Fort-Worth", wantErr: "lowercase"},
		{name: "underscore", input: "fort_worth", wantErr: "lowercase"},
		{name: "leading hyphen", input: "-keller", wantErr: "lowercase"},
		{name: "double hyphen", input: "keller--tx", wantErr: "lowercase"},
		{name: "surrounding space", input: " keller ", wantErr: "lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Check(tt.input)
			require.Equal(t, err == nil, Valid(tt.input))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	require.Equal(t, "haltom-city", Canonical("halton-city"))
	require.Equal(t, "haltom-city", Canonical("haltom-city"))
	require.Equal(t, "plano", Canonical("plano"))
}
