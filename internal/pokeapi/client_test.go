package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDerivesIDsFromURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pokemon", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("limit"))
		require.Equal(t, "0", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 1302,
			"results": [
				{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
				{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1302, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, ListItem{ID: "1", Name: "bulbasaur"}, res.Items[0])
	assert.Equal(t, ListItem{ID: "2", Name: "ivysaur"}, res.Items[1])
}

func TestGetFlattensTypesAndAbilities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pokemon/25", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 25, "name": "pikachu", "height": 4, "weight": 60,
			"sprites": {"front_default": "https://img/25.png"},
			"types": [{"type": {"name": "electric"}}],
			"abilities": [{"ability": {"name": "static"}}, {"ability": {"name": "lightning-rod"}}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	d, err := c.Get(context.Background(), "25")
	require.NoError(t, err)
	assert.Equal(t, 25, d.ID)
	assert.Equal(t, "pikachu", d.Name)
	assert.Equal(t, []string{"electric"}, d.Types)
	assert.Equal(t, []string{"static", "lightning-rod"}, d.Abilities)
	assert.Equal(t, "https://img/25.png", d.Sprite)
}

func TestUpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Get(context.Background(), "doesnotexist")
	assert.Error(t, err)

	_, err = c.List(context.Background(), 20, 0)
	assert.Error(t, err)
}
