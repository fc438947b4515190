package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/core/cache"
	"recipe-importer/internal/core/extract"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

type fetcherFunc func(ctx context.Context, pageURL string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, pageURL string) (string, error) {
	return f(ctx, pageURL)
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (g generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return g(ctx, prompt)
}

func newTestRouter(t *testing.T, fetcher extract.PageFetcher, gen extract.TextGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Extract: config.ExtractConfig{HTMLPromptLimit: 50000, TechniqueTextLimit: 40000},
		Cache:   config.CacheConfig{Enabled: false},
	}
	mgr, err := cache.NewManager(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	handler := NewHandler(extract.NewService(cfg, fetcher, gen, mgr))
	router := gin.New()
	router.POST("/api/ai/parse-recipe", handler.HandleParseRecipe)
	router.GET("/api/ai/sources", handler.HandleListSources)
	return router
}

func postParseRecipe(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/parse-recipe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const recipePageHTML = `<html><head><script type="application/ld+json">
{
	"@type": "Recipe",
	"name": "Midnight Pasta",
	"prepTime": "PT5M",
	"cookTime": "PT15M",
	"recipeIngredient": ["1 pound spaghetti", "4 cloves garlic"],
	"recipeInstructions": ["Boil the pasta.", "Toss with garlic oil."]
}
</script></head><body></body></html>`

func TestHandleParseRecipeSuccess(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
		return recipePageHTML, nil
	})
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model must not be called on the structured path")
	})
	router := newTestRouter(t, fetcher, gen)

	w := postParseRecipe(router, `{"url": "https://www.seriouseats.com/midnight-pasta"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Recipe  *common.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Midnight Pasta", resp.Recipe.Title)
	assert.Equal(t, 5, resp.Recipe.PrepTime)
	assert.Equal(t, 15, resp.Recipe.CookTime)
	assert.Equal(t, 20, resp.Recipe.TotalTime)
	assert.Equal(t, common.DifficultyEasy, resp.Recipe.Difficulty)
	assert.Equal(t, 4, resp.Recipe.Servings)
	assert.Len(t, resp.Recipe.Ingredients, 2)
	assert.Len(t, resp.Recipe.Steps, 2)
	assert.Equal(t, "Serious Eats", resp.Recipe.Source.Name)
	assert.True(t, resp.Recipe.Source.Approved)

	// 請求沒帶 X-Request-ID 時回應會補一個
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestHandleParseRecipeBadRequest(t *testing.T) {
	router := newTestRouter(t,
		fetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
			return "", errors.New("fetch must not be called")
		}),
		generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model must not be called")
		}),
	)

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing url field", `{"address": "https://example.com"}`},
		{"malformed json", `not json`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postParseRecipe(router, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "url is required", resp["error"])
		})
	}
}

func TestHandleParseRecipeInvalidURL(t *testing.T) {
	router := newTestRouter(t,
		fetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
			return "", errors.New("fetch must not be called")
		}),
		generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model must not be called")
		}),
	)

	w := postParseRecipe(router, `{"url": "ftp://example.com/recipe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "url must use http or https", resp["error"])
}

func TestHandleParseRecipeFetchFailure(t *testing.T) {
	router := newTestRouter(t,
		fetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
			return "", errors.New("dial tcp: connection refused")
		}),
		generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model must not be called")
		}),
	)

	w := postParseRecipe(router, `{"url": "https://example.com/gone"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "connection refused")
}

func TestHandleParseRecipeModelFailure(t *testing.T) {
	router := newTestRouter(t,
		fetcherFunc(func(ctx context.Context, pageURL string) (string, error) {
			return `<html><body><p>plain page</p></body></html>`, nil
		}),
		generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			return "I could not find a recipe.", nil
		}),
	)

	w := postParseRecipe(router, `{"url": "https://example.com/not-a-recipe"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "raw response (truncated)")
	assert.Contains(t, resp["error"], "I could not find a recipe.")
}

func TestHandleListSources(t *testing.T) {
	router := newTestRouter(t,
		fetcherFunc(func(ctx context.Context, pageURL string) (string, error) { return "", nil }),
		generatorFunc(func(ctx context.Context, prompt string) (string, error) { return "", nil }),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/sources", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Sources []struct {
			Hostname          string `json:"hostname"`
			Name              string `json:"name"`
			TechniqueApproved bool   `json:"techniqueApproved"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Sources)

	byHost := make(map[string]bool)
	for _, s := range resp.Sources {
		byHost[s.Hostname] = s.TechniqueApproved
		assert.NotEmpty(t, s.Name)
	}
	assert.True(t, byHost["seriouseats.com"])
	assert.False(t, byHost["delish.com"])
}
