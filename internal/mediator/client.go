package mediator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const defaultAPIBase = "https://mediator.vodtools.org/v1"

// Client talks to the mediator category API.
type Client struct {
	apiBase   string
	utcOffset int
	http      *http.Client
}

// New creates a Client for the given API base URL. If apiBase is empty,
// the public endpoint is used. utcOffset is passed through to the API so
// schedule-dependent categories resolve in local time.
func New(apiBase string, utcOffset int) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")

	return &Client{
		apiBase:   apiBase,
		utcOffset: utcOffset,
		// No client timeout: a hung request stalls the run rather than
		// aborting it halfway, matching the rest of the pipeline.
		http: &http.Client{},
	}
}

// GetCategory fetches one category with its subcategories and media.
// A missing category or language yields ErrNotFound.
func (c *Client) GetCategory(lang, key string) (*Category, error) {
	u := fmt.Sprintf("%s/categories/%s/%s?detailed=1&utcOffset=%d",
		c.apiBase, url.PathEscape(lang), url.PathEscape(key), c.utcOffset)

	var resp categoryResponse
	if err := c.getJSON(u, &resp); err != nil {
		return nil, err
	}
	// Older API revisions report missing keys inside a 200 body.
	if resp.Status == "404" {
		return nil, ErrNotFound
	}
	return &resp.Category, nil
}

// Languages returns the language index sorted by display name.
func (c *Client) Languages() ([]Language, error) {
	u := c.apiBase + "/languages/E/web?clientType=www"

	var resp languagesResponse
	if err := c.getJSON(u, &resp); err != nil {
		return nil, err
	}
	langs := resp.Languages
	sort.Slice(langs, func(i, j int) bool { return langs[i].Name < langs[j].Name })
	return langs, nil
}

func (c *Client) getJSON(url string, out interface{}) error {
	resp, err := c.http.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("mediator API error %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding mediator response: %w", err)
	}
	return nil
}
