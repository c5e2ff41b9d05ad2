package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/pokeapi"
)

// Fixed upstream-failure messages for the explore proxy.  Any PokeAPI
// error collapses into these; the proxy performs no retries.
const (
	msgPokemonFailure  = "failed to communicate with the pokemon service"
	msgPokemonNotFound = "pokemon not found"
)

// PokemonHandler proxies the public PokeAPI through the dashboard.
type PokemonHandler struct {
	Client *pokeapi.Client
}

func NewPokemonHandler(client *pokeapi.Client) *PokemonHandler {
	return &PokemonHandler{Client: client}
}

// List proxies the paginated pokemon index with the shared envelope.
func (h *PokemonHandler) List(c echo.Context) error {
	limit, offset := limitOffset(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Client.List(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgPokemonFailure})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": res.Items,
		"meta": buildMeta(res.Total, limit, offset),
	})
}

// Get proxies the detail view for one pokemon by id or name.
func (h *PokemonHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	d, err := h.Client.Get(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgPokemonNotFound})
	}
	return c.JSON(http.StatusOK, d)
}
