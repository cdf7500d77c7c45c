package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationName(t *testing.T) {
	t.Parallel()

	ex := NewLocationExtractor("TX")

	tests := []struct {
		name string
		html string
		slug string
		want string
	}{
		{
			name: "city and state",
			html: "<p>Fort Worth, TX investors use our desk.</p>",
			slug: "fort-worth",
			want: "Fort Worth",
		},
		{
			name: "verb phrase",
			html: "<p>North Richland Hills serves a growing base of investors.</p>",
			slug: "nrh",
			want: "North Richland Hills",
		},
		{
			name: "exception table when nothing matches",
			html: "<p>Investors near the lake sell rentals.</p>",
			slug: "lake-worth",
			want: "Lake Worth",
		},
		{
			name: "alias resolves to the corrected name",
			slug: "halton-city",
			want: "Haltom City",
		},
		{
			name: "title cased slug",
			slug: "some-unlisted-slug",
			want: "Some Unlisted Slug",
		},
		{
			name: "other state does not match the state rule",
			html: "<p>Tulsa, OK investors use our desk.</p>",
			slug: "tulsa",
			want: "Tulsa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ex.Name(tt.html, tt.slug))
		})
	}
}

func TestServiceName(t *testing.T) {
	t.Parallel()

	ex := NewServiceExtractor()

	tests := []struct {
		name string
		html string
		slug string
		want string
	}{
		{
			name: "keyword phrase",
			html: "<p>Qualified Intermediary Services provide safe harbor custody of exchange funds.</p>",
			slug: "qualified-intermediary-services",
			want: "Qualified Intermediary Services",
		},
		{
			name: "keyword match is case insensitive",
			html: "<p>boot analysis is a review of cash boot.</p>",
			slug: "boot-analysis",
			want: "boot analysis",
		},
		{
			name: "lead phrase strips article",
			html: "<p>A Timeline Review offers a calendar of every deadline.</p>",
			slug: "timeline-review",
			want: "Timeline Review",
		},
		{
			name: "lead phrase strips an",
			html: "<p>An Investor Guide offer walks through the rules.</p>",
			slug: "investor-guide",
			want: "Investor Guide",
		},
		{
			name: "exception table without description",
			slug: "nnn-property-identification",
			want: "NNN Property Identification",
		},
		{
			name: "title case fallback",
			html: "<p>short</p>",
			slug: "market-watch",
			want: "Market Watch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ex.Name(tt.html, tt.slug))
		})
	}
}

func TestTitleSlug(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Some Unlisted Slug", TitleSlug("some-unlisted-slug"))
	require.Equal(t, "Mckinney", TitleSlug("mckinney"))
	require.Equal(t, "7th Street", TitleSlug("7th-street"))
	require.Equal(t, "", TitleSlug(""))
}

func TestFirstParagraph(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Hello there.", FirstParagraph("<h2>x</h2><p>  Hello there. </p><p>Second</p>"))
	require.Equal(t, "", FirstParagraph("<div>no paragraphs</div>"))
	require.Equal(t, "", FirstParagraph(""))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 250)
	got := Truncate(long, SummaryLimit)
	require.Len(t, got, 200)
	require.Equal(t, strings.Repeat("a", 197)+"...", got)

	exact := strings.Repeat("b", 200)
	require.Equal(t, exact, Truncate(exact, SummaryLimit))

	accented := strings.Repeat("é", 201)
	require.Equal(t, strings.Repeat("é", 197)+"...", Truncate(accented, SummaryLimit))
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Fort Worth, TX investors. Second paragraph.",
		PlainText("<p>Fort Worth, TX   investors.</p>\n<p>Second <strong>paragraph</strong>.</p>"))
	require.Equal(t, "", PlainText("   "))
	require.Equal(t, "unclosed text", PlainText("<div>unclosed <b>text"))
}
