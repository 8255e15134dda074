package context7

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
	"github.com/morikuni/failure/v2"
	"github.com/yomek/c7ctl/api/cache"
	"golang.org/x/net/html"
)

// SourcePage is a docs source page converted to markdown
type SourcePage struct {
	URL     string
	Title   string
	Content string
}

// FetchSourcePage downloads a configured docs source page and converts it to
// markdown. Pages are cached, forceUpdate bypasses the cache.
func FetchSourcePage(rawURL string, forceUpdate bool) (*SourcePage, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, failure.New(ErrSourceFetch,
			failure.Message("Docs source URL is not valid"),
			failure.Context{"url": rawURL},
		)
	}

	htmlCache := cache.New[string]("html")
	body, err := htmlCache.GetOrSet(u.String(), func() (string, error) {
		return fetchHTML(u)
	}, forceUpdate)
	if err != nil {
		return nil, failure.Wrap(err, failure.Context{"url": rawURL})
	}

	page := &SourcePage{
		URL:   u.String(),
		Title: extractTitle(body),
	}

	md, err := markdown(u, body)
	if err != nil {
		// Unconvertible pages are kept raw rather than dropped
		page.Content = body
		return page, nil
	}
	page.Content = md
	return page, nil
}

func fetchHTML(u *url.URL) (string, error) {
	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return "", err
	}

	// Some documentation hosts reject requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", failure.New(ErrSourceFetch,
			failure.Message("Docs source page could not be fetched"),
			failure.Context{"url": u.String(), "status": resp.Status},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func markdown(u *url.URL, body string) (string, error) {
	// Readability strips navigation and chrome from documentation pages
	article, err := readability.Extract(body, readability.DefaultOptions())
	if err == nil && article.Root != nil {
		return readability.ToMarkdown(article.Root), nil
	}

	// Fall back to a plain HTML conversion
	converter := html2md.NewConverter(u.Host, true, &html2md.Options{})
	return converter.ConvertString(body)
}

// extractTitle returns the content of the first <title> element
func extractTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
