package clipper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"meal-planner/internal/apperr"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClipURL(t *testing.T) {
	ctx := context.Background()

	t.Run("SchemaOrgMarkup", func(t *testing.T) {
		srv := servePage(t, `<html><head>
			<meta property="og:title" content="Garlic Chicken Pasta">
			<meta property="og:description" content="A quick weeknight dinner.">
			</head><body>
			<div itemscope itemtype="https://schema.org/Recipe">
				<span itemprop="recipeIngredient">300 g pasta</span>
				<span itemprop="recipeIngredient">2 cloves garlic</span>
				<div itemprop="recipeInstructions">
					<ol>
						<li>Boil the pasta.</li>
						<li>Fry the garlic.</li>
					</ol>
				</div>
			</div>
			</body></html>`)

		draft, err := New().ClipURL(ctx, srv.URL)
		if err != nil {
			t.Fatalf("Expected clip to succeed, got %v", err)
		}
		if draft.Name != "Garlic Chicken Pasta" {
			t.Errorf("Expected og:title, got %q", draft.Name)
		}
		if draft.Description != "A quick weeknight dinner." {
			t.Errorf("Expected og:description, got %q", draft.Description)
		}
		if len(draft.Ingredients) != 2 || draft.Ingredients[0] != "300 g pasta" {
			t.Errorf("Unexpected ingredients: %v", draft.Ingredients)
		}
		if len(draft.Steps) != 2 || draft.Steps[1] != "Fry the garlic." {
			t.Errorf("Unexpected steps: %v", draft.Steps)
		}
		if draft.SourceURL != srv.URL {
			t.Errorf("Expected source URL %q, got %q", srv.URL, draft.SourceURL)
		}
	})

	t.Run("HeadingFallback", func(t *testing.T) {
		srv := servePage(t, `<html><body>
			<h1>Banana Oatmeal</h1>
			<h2>Ingredients</h2>
			<ul>
				<li>1 banana</li>
				<li>50 g oats</li>
			</ul>
			<h2>Instructions</h2>
			<ol>
				<li>Mash the banana.</li>
				<li>Stir in the oats.</li>
			</ol>
			</body></html>`)

		draft, err := New().ClipURL(ctx, srv.URL)
		if err != nil {
			t.Fatalf("Expected clip to succeed, got %v", err)
		}
		if draft.Name != "Banana Oatmeal" {
			t.Errorf("Expected h1 title, got %q", draft.Name)
		}
		if len(draft.Ingredients) != 2 || draft.Ingredients[1] != "50 g oats" {
			t.Errorf("Unexpected ingredients: %v", draft.Ingredients)
		}
		if len(draft.Steps) != 2 || draft.Steps[0] != "Mash the banana." {
			t.Errorf("Unexpected steps: %v", draft.Steps)
		}
	})

	t.Run("NoRecipeMarkup", func(t *testing.T) {
		srv := servePage(t, `<html><body><h1>Company Blog</h1><p>Nothing to cook here.</p></body></html>`)
		_, err := New().ClipURL(ctx, srv.URL)
		if !apperr.IsInvalidArgument(err) {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()
		if _, err := New().ClipURL(ctx, srv.URL); err == nil {
			t.Error("Expected an error for a non-200 response")
		}
	})

	t.Run("ScriptNoiseIgnored", func(t *testing.T) {
		srv := servePage(t, `<html><body>
			<script>var ingredient = "fake";</script>
			<h2>Ingredients</h2>
			<ul><li>1 egg</li></ul>
			</body></html>`)

		draft, err := New().ClipURL(ctx, srv.URL)
		if err != nil {
			t.Fatalf("Expected clip to succeed, got %v", err)
		}
		if len(draft.Ingredients) != 1 || draft.Ingredients[0] != "1 egg" {
			t.Errorf("Unexpected ingredients: %v", draft.Ingredients)
		}
	})
}
