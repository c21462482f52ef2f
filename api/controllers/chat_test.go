package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/secondnest/internal/chat"
	"github.com/angelmondragon/secondnest/internal/state"
)

func newChatHandlers(t *testing.T) ChatHandlers {
	return ChatHandlers{
		Catalog: seedCatalog(t),
		State:   state.NewMemoryStore(),
		Replies: chat.NewSequencePicker("Yes, it's still available!"),
	}
}

func TestChatSendAndHistory(t *testing.T) {
	h := newChatHandlers(t)
	params := map[string]string{"listingID": "2"}

	resp := httptest.NewRecorder()
	h.Send().ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/listings/2/chat", `{"message":"  Is this still available?  "}`, params))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var exchange chat.Exchange
	decodeData(t, resp, &exchange)
	assert.Equal(t, "Is this still available?", exchange.Sent.Message)
	assert.Equal(t, testSession, exchange.Sent.SenderID)
	assert.Equal(t, chat.SellerID, exchange.Sent.ReceiverID)
	assert.Equal(t, "Yes, it's still available!", exchange.Reply.Message)
	assert.Equal(t, "2", exchange.Reply.ItemID)

	resp = httptest.NewRecorder()
	h.History().ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings/2/chat", "", params))
	require.Equal(t, http.StatusOK, resp.Code)

	var history struct {
		ListingID  string         `json:"listingId"`
		SellerName string         `json:"sellerName"`
		Messages   []chat.Message `json:"messages"`
	}
	decodeData(t, resp, &history)
	assert.Equal(t, "2", history.ListingID)
	assert.NotEmpty(t, history.SellerName)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, exchange.Sent.ID, history.Messages[0].ID)
}

func TestChatHistoryIsPerListing(t *testing.T) {
	h := newChatHandlers(t)
	h.Send().ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodPost, "/api/v1/listings/2/chat", `{"message":"hi"}`, map[string]string{"listingID": "2"}))

	resp := httptest.NewRecorder()
	h.History().ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/listings/3/chat", "", map[string]string{"listingID": "3"}))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"messages":[]`)
}

func TestChatSendValidation(t *testing.T) {
	h := newChatHandlers(t)
	params := map[string]string{"listingID": "2"}

	cases := map[string]string{
		"blank":    `{"message":"   "}`,
		"missing":  `{}`,
		"too long": `{"message":"` + strings.Repeat("a", chat.MaxMessageLength+1) + `"}`,
	}
	for name, body := range cases {
		resp := httptest.NewRecorder()
		h.Send().ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/listings/2/chat", body, params))
		assert.Equal(t, http.StatusBadRequest, resp.Code, name)
	}

	resp := httptest.NewRecorder()
	h.Send().ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/listings/99/chat", `{"message":"hi"}`, map[string]string{"listingID": "99"}))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
