// Package pokeapi is a thin read-only client for the public PokeAPI,
// exposed through the explore endpoints of the dashboard.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a PokeAPI-compatible server.  BaseURL is injectable so
// tests can point it at a local httptest server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListItem is one entry in the paginated listing: the numeric id is
// derived from the resource URL the upstream returns.
type ListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListResult carries a page of items plus the upstream total.
type ListResult struct {
	Items []ListItem
	Total int
}

// Details is the trimmed-down detail view served to clients.
type Details struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	Sprite    string   `json:"sprite"`
}

// upstream wire shapes; only the fields we read are declared.
type listResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type detailResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pokeapi: unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// List fetches one page of the pokemon index.  Resource URLs look like
// ".../pokemon/25/"; the penultimate path segment is the id.
func (c *Client) List(ctx context.Context, limit, offset int) (ListResult, error) {
	var raw listResponse
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.BaseURL, limit, offset)
	if err := c.get(ctx, url, &raw); err != nil {
		return ListResult{}, err
	}

	items := make([]ListItem, 0, len(raw.Results))
	for _, r := range raw.Results {
		segs := strings.Split(strings.TrimRight(r.URL, "/"), "/")
		id := ""
		if len(segs) > 0 {
			id = segs[len(segs)-1]
		}
		items = append(items, ListItem{ID: id, Name: r.Name})
	}
	return ListResult{Items: items, Total: raw.Count}, nil
}

// Get fetches the detail view for one pokemon by id or name.
func (c *Client) Get(ctx context.Context, id string) (Details, error) {
	var raw detailResponse
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon/%s", c.BaseURL, id), &raw); err != nil {
		return Details{}, err
	}

	d := Details{
		ID:     raw.ID,
		Name:   raw.Name,
		Height: raw.Height,
		Weight: raw.Weight,
		Sprite: raw.Sprites.FrontDefault,
	}
	for _, t := range raw.Types {
		d.Types = append(d.Types, t.Type.Name)
	}
	for _, a := range raw.Abilities {
		d.Abilities = append(d.Abilities, a.Ability.Name)
	}
	return d, nil
}
