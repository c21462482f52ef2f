package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/responses"
	"github.com/angelmondragon/secondnest/api/validators"
	"github.com/angelmondragon/secondnest/internal/cart"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/checkout"
	"github.com/angelmondragon/secondnest/internal/state"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
)

type addCartItemPayload struct {
	ListingID string `json:"listingId" validate:"required,max=64"`
}

type updateCartItemPayload struct {
	Delta int `json:"delta" validate:"ne=0,min=-1000,max=1000"`
}

type cartResponse struct {
	Items     []cart.Line     `json:"items"`
	ItemCount int             `json:"itemCount"`
	Totals    checkout.Totals `json:"totals"`
}

// CartHandlers serves the session cart and its checkout totals.
type CartHandlers struct {
	Catalog    catalog.Store
	State      state.Store
	Calculator *checkout.Calculator
	Metrics    *metrics.Storefront
	Logger     *logger.Logger
}

func (h CartHandlers) open(r *http.Request) (*cart.Cart, error) {
	store, err := sessionState(r.Context(), h.State)
	if err != nil {
		return nil, err
	}
	return cart.New(store), nil
}

func (h CartHandlers) calculator() *checkout.Calculator {
	if h.Calculator == nil {
		return checkout.NewCalculator(checkout.DefaultRates)
	}
	return h.Calculator
}

func (h CartHandlers) respond(w http.ResponseWriter, lines []cart.Line, membership bool) {
	if lines == nil {
		lines = []cart.Line{}
	}
	responses.WriteSuccess(w, cartResponse{
		Items:     lines,
		ItemCount: cart.CountItems(lines),
		Totals:    h.calculator().Compute(lines, membership),
	})
}

// Fetch returns the cart lines with totals; ?membership=true applies the member discount.
func (h CartHandlers) Fetch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		lines, err := c.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.snapshot"))
			return
		}
		h.respond(w, lines, membership)
	}
}

// Totals returns only the order summary.
func (h CartHandlers) Totals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		lines, err := c.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.snapshot"))
			return
		}
		responses.WriteSuccess(w, h.calculator().Compute(lines, membership))
	}
}

// AddItem puts a catalog listing in the cart or bumps its quantity.
func (h CartHandlers) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		id := strings.TrimSpace(payload.ListingID)
		listing, ok := lookupListing(h.Catalog, id)
		if !ok {
			responses.WriteError(ctx, h.Logger, w, listingNotFound(id))
			return
		}

		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		lines, err := c.Add(ctx, listing)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.add"))
			return
		}
		h.Metrics.IncCartMutation("add")
		h.respond(w, lines, membership)
	}
}

// UpdateItem adjusts a line by delta; lines reaching zero are removed.
func (h CartHandlers) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}

		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		lines, err := c.SetQuantity(ctx, chi.URLParam(r, "listingID"), payload.Delta)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.set_quantity"))
			return
		}
		h.Metrics.IncCartMutation("set_quantity")
		h.respond(w, lines, membership)
	}
}

// RemoveItem drops a line. Removing an absent line succeeds.
func (h CartHandlers) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		lines, err := c.Remove(ctx, chi.URLParam(r, "listingID"))
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.remove"))
			return
		}
		h.Metrics.IncCartMutation("remove")
		h.respond(w, lines, membership)
	}
}

func (h CartHandlers) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		membership, err := validators.ParseQueryBool(r, "membership", false)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		c, err := h.open(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		if err := c.Clear(ctx); err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "cart.clear"))
			return
		}
		h.Metrics.IncCartMutation("clear")
		h.respond(w, nil, membership)
	}
}
