package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/royalkeys/royalkeys/assistant"
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/checkout"
	"github.com/royalkeys/royalkeys/router"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// navStateResponse flattens a router snapshot for the wire.
func navStateResponse(snap router.Snapshot) NavStateResponse {
	return NavStateResponse{
		View:             snap.View,
		SelectedProduct:  snap.SelectedProduct,
		SelectedCategory: snap.SelectedCategory,
		SearchTerm:       snap.SearchTerm,
		ActiveInfoPage:   snap.ActiveInfoPage,
		Toast:            snap.Toast,
		Products:         snap.Products,
	}
}

func (a *API) writeNavState(w http.ResponseWriter, status int) {
	writeJSON(w, status, navStateResponse(a.nav.Snapshot()))
}

// ListCatalog handles GET /catalog. It is a stateless query surface over
// the same filter the catalog view renders: `q` wins over `category`.
func (a *API) ListCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")
	cat := catalog.Category(q.Get("category"))
	if cat != "" && !cat.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	filtered := catalog.Filter(a.catalog.Products(), term, cat)
	limit, offset := parsePagination(r)
	start, end, meta := paginateSlice(len(filtered), limit, offset)

	writeJSON(w, http.StatusOK, ListCatalogResponse{
		Products:   filtered[start:end],
		Pagination: meta,
	})
}

// ListCategories handles GET /catalog/categories.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListCategoriesResponse{Categories: catalog.Categories()})
}

// GetProduct handles GET /catalog/{productID}.
func (a *API) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.catalog.ByID(chi.URLParam(r, "productID"))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// NavState handles GET /nav/state.
func (a *API) NavState(w http.ResponseWriter, r *http.Request) {
	a.writeNavState(w, http.StatusOK)
}

// NavHome handles POST /nav/home.
func (a *API) NavHome(w http.ResponseWriter, r *http.Request) {
	a.nav.GoHome()
	a.writeNavState(w, http.StatusOK)
}

// NavCategory handles POST /nav/category.
func (a *API) NavCategory(w http.ResponseWriter, r *http.Request) {
	var req NavCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.nav.GoToCategory(req.Category); err != nil {
		mapError(w, err)
		return
	}
	a.writeNavState(w, http.StatusOK)
}

// NavSearch handles POST /nav/search. An empty term is a no-op: the
// current state is returned unchanged.
func (a *API) NavSearch(w http.ResponseWriter, r *http.Request) {
	var req NavSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a.nav.Search(req.Term)
	a.writeNavState(w, http.StatusOK)
}

// NavProduct handles POST /nav/product.
func (a *API) NavProduct(w http.ResponseWriter, r *http.Request) {
	var req NavProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.nav.SelectProduct(req.ProductID); err != nil {
		mapError(w, err)
		return
	}
	a.writeNavState(w, http.StatusOK)
}

// NavInfo handles POST /nav/info.
func (a *API) NavInfo(w http.ResponseWriter, r *http.Request) {
	var req NavInfoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.nav.OpenInfoPage(req.Page); err != nil {
		mapError(w, err)
		return
	}
	a.writeNavState(w, http.StatusOK)
}

// NavDashboard handles POST /nav/dashboard.
func (a *API) NavDashboard(w http.ResponseWriter, r *http.Request) {
	a.nav.OpenDashboard()
	a.writeNavState(w, http.StatusOK)
}

// GetSession handles GET /session.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	u := a.sessions.User()
	writeJSON(w, http.StatusOK, SessionResponse{
		Email:      u.Email,
		IsLoggedIn: u.IsLoggedIn,
		KeyCount:   len(u.Keys),
	})
}

// ListKeys handles GET /session/keys. Keys are returned newest first.
func (a *API) ListKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListKeysResponse{Keys: a.sessions.User().Keys})
}

// BeginCheckout handles POST /checkout.
func (a *API) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	if err := a.nav.BeginCheckout(); err != nil {
		mapError(w, err)
		return
	}
	a.writeNavState(w, http.StatusOK)
}

// CancelCheckout handles POST /checkout/cancel.
func (a *API) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := a.nav.CancelCheckout(); err != nil {
		mapError(w, err)
		return
	}
	a.writeNavState(w, http.StatusOK)
}

// SubmitCheckout handles POST /checkout/submit: it runs the payment
// through the processor and, only on success, applies the completion
// transition that mints a license key. A processor failure mutates
// nothing.
func (a *API) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var req SubmitCheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap := a.nav.Snapshot()
	if snap.SelectedProduct == nil {
		mapError(w, router.ErrNoSelection)
		return
	}

	if err := a.processor.Submit(r.Context(), *snap.SelectedProduct, req.Payment); err != nil {
		if errors.Is(err, checkout.ErrInvalidDetails) {
			mapError(w, err)
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	key, err := a.nav.CompleteCheckout(snap.SelectedProduct.ID)
	if err != nil {
		mapError(w, err)
		return
	}
	a.audit.logEvent(AuditCheckoutCompleted, r, snap.SelectedProduct.ID,
		slog.String("license_key_id", key.ID))

	writeJSON(w, http.StatusCreated, SubmitCheckoutResponse{
		Key:  key,
		View: a.nav.View(),
	})
}

// AssistantChat handles POST /assistant/chat. The reply is always
// user-facing text; upstream failures degrade to fixed fallback copy.
func (a *API) AssistantChat(w http.ResponseWriter, r *http.Request) {
	var req AssistantChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt must not be empty")
		return
	}
	if a.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}
	writeJSON(w, http.StatusOK, AssistantChatResponse{
		Reply: assistant.Respond(r.Context(), a.assistant, req.Prompt),
	})
}
