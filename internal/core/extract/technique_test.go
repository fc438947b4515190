package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageText(t *testing.T) {
	t.Run("strips script and style content", func(t *testing.T) {
		html := `<html><head>
			<script>var tracker = "beacon";</script>
			<style>.hero { color: red; }</style>
		</head><body>
			<noscript>enable javascript</noscript>
			<p>Sear the beef in batches.</p>
		</body></html>`

		text := pageText(html)
		assert.Contains(t, text, "Sear the beef in batches.")
		assert.NotContains(t, text, "tracker")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "enable javascript")
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		html := "<html><body><p>Rest   the\n\n\tdough.</p></body></html>"
		text := pageText(html)
		assert.Contains(t, text, "Rest the dough.")
	})

	t.Run("empty page", func(t *testing.T) {
		assert.Equal(t, "", pageText("<html><body></body></html>"))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \t b \n\n c  "))
	assert.Equal(t, "", collapseWhitespace(" \n\t "))
	assert.Equal(t, "plain", collapseWhitespace("plain"))
}

func TestExtractTechniquesFiltering(t *testing.T) {
	fetcher := &stubFetcher{}
	gen := &stubGenerator{
		reply: func(string) (string, error) {
			return `{
				"techniques": [
					{"title": "Blanching", "category": "vegetables_produce", "description": "Brief boil then ice bath."},
					{"title": "Sous Vide", "category": "water_bath", "description": "Not a known category."},
					{"title": "", "category": "heat_control", "description": "No title."}
				]
			}`, nil
		},
	}
	svc := newTestService(t, testConfig(), fetcher, gen)

	techniques, err := svc.extractTechniques(context.Background(), "Green Beans", "https://www.seriouseats.com/beans",
		"<html><body><p>Blanch the beans briefly, then shock them in ice water.</p></body></html>")
	require.NoError(t, err)

	require.Len(t, techniques, 1)
	assert.Equal(t, "Blanching", techniques[0].Title)
}

func TestExtractTechniquesEmptyPage(t *testing.T) {
	svc := newTestService(t, testConfig(), &stubFetcher{}, &stubGenerator{})

	_, err := svc.extractTechniques(context.Background(), "Title", "https://www.seriouseats.com/x", "<html></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}
