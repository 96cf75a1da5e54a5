package clipper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"meal-planner/internal/apperr"
)

// Draft is a recipe candidate extracted from a web page. It still needs the
// user to map ingredient lines onto catalog ingredients before it can be
// saved as a recipe.
type Draft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	SourceURL   string   `json:"source_url"`
}

// Clipper fetches recipe pages and extracts drafts from their markup.
type Clipper struct {
	httpClient *http.Client
}

// New creates a Clipper with a default HTTP client.
func New() *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a recipe draft. Pages carrying
// schema.org recipe markup are read directly; otherwise a heading-based
// fallback looks for ingredient and step lists. Pages with no recognizable
// recipe content fail with InvalidArgument.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Draft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove noise before text extraction
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	draft := &Draft{
		Name:        extractTitle(doc),
		Description: extractDescription(doc),
		Ingredients: extractItemprop(doc, "recipeIngredient"),
		Steps:       extractInstructions(doc),
		SourceURL:   url,
	}

	if len(draft.Ingredients) == 0 {
		draft.Ingredients = extractListAfterHeading(doc, "ingredient")
	}
	if len(draft.Steps) == 0 {
		draft.Steps = extractListAfterHeading(doc, "instruction", "step", "method", "direction")
	}

	if len(draft.Ingredients) == 0 {
		return nil, apperr.InvalidArgument("no recipe markup found at URL")
	}
	return draft, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return cleanText(og)
	}
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return cleanText(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return cleanText(og)
	}
	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return cleanText(meta)
	}
	return ""
}

func extractItemprop(doc *goquery.Document, prop string) []string {
	var values []string
	doc.Find(fmt.Sprintf(`[itemprop="%s"]`, prop)).Each(func(i int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			values = append(values, text)
		}
	})
	return values
}

func extractInstructions(doc *goquery.Document) []string {
	instructions := doc.Find(`[itemprop="recipeInstructions"]`)
	if instructions.Length() == 0 {
		return nil
	}
	var steps []string
	items := instructions.Find("li")
	if items.Length() > 0 {
		items.Each(func(i int, s *goquery.Selection) {
			if text := cleanText(s.Text()); text != "" {
				steps = append(steps, text)
			}
		})
		return steps
	}
	instructions.Each(func(i int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			steps = append(steps, text)
		}
	})
	return steps
}

// extractListAfterHeading finds the first h1-h4 whose text contains one of
// the given words and returns the entries of the next list element.
func extractListAfterHeading(doc *goquery.Document, words ...string) []string {
	var values []string
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(i int, heading *goquery.Selection) bool {
		text := strings.ToLower(heading.Text())
		matched := false
		for _, word := range words {
			if strings.Contains(text, word) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		list := heading.NextAllFiltered("ul, ol").First()
		list.Find("li").Each(func(j int, li *goquery.Selection) {
			if entry := cleanText(li.Text()); entry != "" {
				values = append(values, entry)
			}
		})
		return len(values) == 0
	})
	return values
}
