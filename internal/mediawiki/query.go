package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PageRef identifies a page returned by a list query.
type PageRef struct {
	PageID    int64  `json:"pageid"`
	Namespace int    `json:"ns"`
	Title     string `json:"title"`
}

// Page is a page with its current content.
type Page struct {
	PageID        int64
	Namespace     int
	Title         string
	Missing       bool
	Wikitext      string
	Categories    []string
	ExternalLinks []string
}

// Revision is one entry of a page history.
type Revision struct {
	User      string    `json:"user"`
	Anon      bool      `json:"anon"`
	Timestamp time.Time `json:"timestamp"`
}

// EmbeddedIn lists pages transcluding template. An empty namespaces slice
// selects all namespaces; limit 0 returns every page.
func (c *Client) EmbeddedIn(ctx context.Context, template string, namespaces []int, limit int) ([]PageRef, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		return nil, errors.New("template must not be empty")
	}
	params := url.Values{}
	params.Set("list", "embeddedin")
	params.Set("eititle", "Template:"+template)
	params.Set("eilimit", "max")
	if len(namespaces) > 0 {
		ns := make([]string, len(namespaces))
		for i, n := range namespaces {
			ns[i] = strconv.Itoa(n)
		}
		params.Set("einamespace", strings.Join(ns, "|"))
	}

	var refs []PageRef
	err := c.query(ctx, params, func(raw json.RawMessage) (bool, error) {
		var q struct {
			EmbeddedIn []PageRef `json:"embeddedin"`
		}
		if err := json.Unmarshal(raw, &q); err != nil {
			return false, fmt.Errorf("decode embeddedin: %w", err)
		}
		refs = append(refs, q.EmbeddedIn...)
		if limit > 0 && len(refs) >= limit {
			refs = refs[:limit]
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

type rawPage struct {
	PageID    int64  `json:"pageid"`
	Namespace int    `json:"ns"`
	Title     string `json:"title"`
	Missing   bool   `json:"missing"`
	Revisions []struct {
		Slots struct {
			Main struct {
				Content string `json:"content"`
			} `json:"main"`
		} `json:"slots"`
	} `json:"revisions"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
	ExternalLinks []struct {
		URL string `json:"url"`
	} `json:"extlinks"`
}

// Pages fetches content, categories and external links for titles, in the
// order given. Titles are requested in batches.
func (c *Client) Pages(ctx context.Context, titles []string) ([]Page, error) {
	pages := make([]Page, 0, len(titles))
	for start := 0; start < len(titles); start += c.batchSize {
		end := min(start+c.batchSize, len(titles))
		batch, err := c.pageBatch(ctx, titles[start:end])
		if err != nil {
			return nil, err
		}
		pages = append(pages, batch...)
	}
	return pages, nil
}

func (c *Client) pageBatch(ctx context.Context, titles []string) ([]Page, error) {
	params := url.Values{}
	params.Set("titles", strings.Join(titles, "|"))
	params.Set("prop", "revisions|categories|extlinks")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")
	params.Set("cllimit", "max")
	params.Set("ellimit", "max")

	byTitle := make(map[string]*Page, len(titles))
	renamed := make(map[string]string)
	err := c.query(ctx, params, func(raw json.RawMessage) (bool, error) {
		var q struct {
			Normalized []struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"normalized"`
			Pages []rawPage `json:"pages"`
		}
		if err := json.Unmarshal(raw, &q); err != nil {
			return false, fmt.Errorf("decode pages: %w", err)
		}
		for _, n := range q.Normalized {
			renamed[n.From] = n.To
		}
		for _, rp := range q.Pages {
			page, ok := byTitle[rp.Title]
			if !ok {
				page = &Page{PageID: rp.PageID, Namespace: rp.Namespace, Title: rp.Title, Missing: rp.Missing}
				byTitle[rp.Title] = page
			}
			if len(rp.Revisions) > 0 && page.Wikitext == "" {
				page.Wikitext = rp.Revisions[0].Slots.Main.Content
			}
			for _, cat := range rp.Categories {
				page.Categories = append(page.Categories, cat.Title)
			}
			for _, link := range rp.ExternalLinks {
				page.ExternalLinks = append(page.ExternalLinks, link.URL)
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Page, 0, len(titles))
	for _, title := range titles {
		key := title
		if to, ok := renamed[title]; ok {
			key = to
		}
		if page, ok := byTitle[key]; ok {
			out = append(out, *page)
			delete(byTitle, key)
		}
	}
	return out, nil
}

// Revisions walks the history of title oldest first, calling fn for each
// revision.
func (c *Client) Revisions(ctx context.Context, title string, fn func(Revision) error) error {
	params := url.Values{}
	params.Set("titles", title)
	params.Set("prop", "revisions")
	params.Set("rvprop", "user|timestamp")
	params.Set("rvdir", "newer")
	params.Set("rvlimit", "max")

	return c.query(ctx, params, func(raw json.RawMessage) (bool, error) {
		var q struct {
			Pages []struct {
				Missing   bool       `json:"missing"`
				Revisions []Revision `json:"revisions"`
			} `json:"pages"`
		}
		if err := json.Unmarshal(raw, &q); err != nil {
			return false, fmt.Errorf("decode revisions: %w", err)
		}
		for _, page := range q.Pages {
			if page.Missing {
				return false, fmt.Errorf("page %q does not exist", title)
			}
			for _, rev := range page.Revisions {
				if err := fn(rev); err != nil {
					return false, err
				}
			}
		}
		return true, nil
	})
}
