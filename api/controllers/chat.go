package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/middleware"
	"github.com/angelmondragon/secondnest/api/responses"
	"github.com/angelmondragon/secondnest/api/validators"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/chat"
	"github.com/angelmondragon/secondnest/internal/state"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
)

type sendMessagePayload struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type chatHistoryResponse struct {
	ListingID  string         `json:"listingId"`
	SellerName string         `json:"sellerName"`
	Messages   []chat.Message `json:"messages"`
}

// ChatHandlers serves the per-listing seller conversation.
type ChatHandlers struct {
	Catalog catalog.Store
	State   state.Store
	Replies chat.ReplyPicker
	Metrics *metrics.Storefront
	Logger  *logger.Logger
}

func (h ChatHandlers) service(r *http.Request) (*chat.Service, error) {
	store, err := sessionState(r.Context(), h.State)
	if err != nil {
		return nil, err
	}
	return chat.NewService(store, h.Replies), nil
}

// History returns the conversation for a listing, oldest first.
func (h ChatHandlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "listingID"))
		listing, ok := lookupListing(h.Catalog, id)
		if !ok {
			responses.WriteError(ctx, h.Logger, w, listingNotFound(id))
			return
		}

		svc, err := h.service(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		messages, err := svc.History(ctx, id)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "chat.history"))
			return
		}
		responses.WriteSuccess(w, chatHistoryResponse{ListingID: id, SellerName: listing.SellerName, Messages: messages})
	}
}

// Send records the buyer's message and the seller's automatic reply.
func (h ChatHandlers) Send() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "listingID"))
		if _, ok := lookupListing(h.Catalog, id); !ok {
			responses.WriteError(ctx, h.Logger, w, listingNotFound(id))
			return
		}

		var payload sendMessagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}

		svc, err := h.service(r)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, err)
			return
		}
		exchange, err := svc.Send(ctx, id, middleware.SessionIDFromContext(ctx), payload.Message)
		if err != nil {
			responses.WriteError(ctx, h.Logger, w, stateError(err, "chat.send"))
			return
		}
		h.Metrics.IncChatMessage("buyer")
		h.Metrics.IncChatMessage(chat.SellerID)
		if h.Logger != nil {
			h.Logger.Info(h.Logger.WithListingID(ctx, id), "chat.message.sent")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, exchange)
	}
}
