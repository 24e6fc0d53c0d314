// Package router implements the storefront's view-state machine: which
// screen is active, the context that screen needs, and how navigation
// events transition between them.
package router

import (
	"errors"
	"sync"
	"time"

	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/session"
)

var (
	// ErrUnknownProduct is returned when a product ID does not resolve in
	// the catalog. The router never invents products.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrUnknownCategory is returned for a category outside the known set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownInfoPage is returned for an unrecognized info page.
	ErrUnknownInfoPage = errors.New("unknown info page")
	// ErrNoSelection is returned when a checkout transition is attempted
	// without a selected product.
	ErrNoSelection = errors.New("no product selected")
	// ErrSelectionChanged is returned when checkout completion names a
	// product that is no longer the selection.
	ErrSelectionChanged = errors.New("selected product changed")
)

// DefaultToastTTL is how long a toast stays visible with no further events.
const DefaultToastTTL = 3 * time.Second

// Snapshot is the full navigation state a renderer needs, captured
// atomically under the router's lock.
type Snapshot struct {
	View             View
	SelectedProduct  *catalog.Product
	SelectedCategory catalog.Category
	SearchTerm       string
	ActiveInfoPage   InfoPage
	Toast            *Toast
	Products         []catalog.Product
}

// Router holds the transient navigation context and applies navigation
// events one at a time. All transitions are synchronous and atomic; the
// only durable side effect is session persistence on checkout completion.
type Router struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	sessions *session.Manager

	view             View
	selectedProduct  *catalog.Product
	selectedCategory catalog.Category
	searchTerm       string
	activeInfoPage   InfoPage

	toast      *Toast
	toastGen   uint64
	toastTTL   time.Duration
	toastTimer stopper
	after      afterFunc
}

// afterFunc schedules fn after d and returns a handle to cancel it.
// Indirection exists so tests can fire expiry deterministically.
type afterFunc func(d time.Duration, fn func()) stopper

type stopper interface {
	Stop() bool
}

// Option configures a Router.
type Option func(*Router)

// WithToastTTL overrides the toast expiry window.
func WithToastTTL(ttl time.Duration) Option {
	return func(r *Router) { r.toastTTL = ttl }
}

// WithAfterFunc overrides the timer used for toast expiry. Intended for tests.
func WithAfterFunc(after func(d time.Duration, fn func()) interface{ Stop() bool }) Option {
	return func(r *Router) {
		r.after = func(d time.Duration, fn func()) stopper { return after(d, fn) }
	}
}

// New creates a Router starting at the home view.
func New(cat *catalog.Catalog, sessions *session.Manager, opts ...Option) *Router {
	r := &Router{
		catalog:  cat,
		sessions: sessions,
		view:     ViewHome,
		toastTTL: DefaultToastTTL,
		after: func(d time.Duration, fn func()) stopper {
			return time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GoHome returns to the home view and clears all residual filter and
// selection state. Idempotent.
func (r *Router) GoHome() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = ViewHome
	r.selectedCategory = ""
	r.searchTerm = ""
	r.selectedProduct = nil
}

// GoToCategory activates the catalog view filtered to cat. Any active
// search term is cleared.
func (r *Router) GoToCategory(cat catalog.Category) error {
	if !cat.Valid() {
		return ErrUnknownCategory
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedCategory = cat
	r.searchTerm = ""
	r.view = ViewCatalog
	return nil
}

// Search activates the catalog view filtered by term. An empty term is a
// no-op: the view and filters stay exactly as they were. A previously
// selected category remains stored but is superseded by the term at
// filter time.
func (r *Router) Search(term string) {
	if term == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchTerm = term
	r.view = ViewCatalog
}

// SelectProduct activates the product-detail view for the given catalog
// entry. Unknown IDs leave the state untouched.
func (r *Router) SelectProduct(id string) error {
	p, err := r.catalog.ByID(id)
	if err != nil {
		return ErrUnknownProduct
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedProduct = &p
	r.view = ViewProduct
	return nil
}

// BeginCheckout enters the checkout view for the selected product.
func (r *Router) BeginCheckout() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selectedProduct == nil {
		return ErrNoSelection
	}
	r.view = ViewCheckout
	return nil
}

// CancelCheckout returns to the product-detail view of the product that
// was being purchased.
func (r *Router) CancelCheckout() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selectedProduct == nil {
		return ErrNoSelection
	}
	r.view = ViewProduct
	return nil
}

// CompleteCheckout applies the single state-mutating transition with a
// durable side effect: it mints one license key for the paid-for product,
// prepends it to the session, raises a success toast, and lands on the
// dashboard. Callers invoke it once per successful payment, passing the ID
// of the product the payment was submitted for; if navigation has moved
// the selection elsewhere in the meantime, nothing is minted.
func (r *Router) CompleteCheckout(productID string) (session.LicenseKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selectedProduct == nil {
		return session.LicenseKey{}, ErrNoSelection
	}
	if r.selectedProduct.ID != productID {
		return session.LicenseKey{}, ErrSelectionChanged
	}
	key := r.sessions.MintKey(*r.selectedProduct)
	r.sessions.AddKey(key)
	r.showToastLocked("License generated! Check your vault.", ToastSuccess)
	r.view = ViewDashboard
	return key, nil
}

// OpenInfoPage activates the info view for the given static page.
func (r *Router) OpenInfoPage(page InfoPage) error {
	if !page.Valid() {
		return ErrUnknownInfoPage
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeInfoPage = page
	r.view = ViewInfo
	return nil
}

// OpenDashboard activates the dashboard view. No precondition: an empty
// vault renders as an empty state, not an error.
func (r *Router) OpenDashboard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = ViewDashboard
}

// ShowToast raises an informational toast, replacing any toast currently
// showing and restarting the expiry window.
func (r *Router) ShowToast(message string, kind ToastKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showToastLocked(message, kind)
}

// showToastLocked arms the expiry timer for a new toast. The generation
// counter ensures a stale timer never clears a replacement toast.
func (r *Router) showToastLocked(message string, kind ToastKind) {
	r.toast = &Toast{Message: message, Kind: kind}
	r.toastGen++
	gen := r.toastGen
	if r.toastTimer != nil {
		r.toastTimer.Stop()
	}
	r.toastTimer = r.after(r.toastTTL, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.toastGen == gen {
			r.toast = nil
			r.toastTimer = nil
		}
	})
}

// Toast returns the currently showing toast, or nil.
func (r *Router) Toast() *Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toast == nil {
		return nil
	}
	t := *r.toast
	return &t
}

// View returns the currently active view.
func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// FilteredProducts derives the product subsequence the catalog view
// renders from the current search term and category.
func (r *Router) FilteredProducts() []catalog.Product {
	r.mu.Lock()
	term, cat := r.searchTerm, r.selectedCategory
	r.mu.Unlock()
	return catalog.Filter(r.catalog.Products(), term, cat)
}

// Snapshot captures the complete navigation state for rendering.
func (r *Router) Snapshot() Snapshot {
	r.mu.Lock()
	snap := Snapshot{
		View:             r.view,
		SelectedCategory: r.selectedCategory,
		SearchTerm:       r.searchTerm,
		ActiveInfoPage:   r.activeInfoPage,
	}
	if r.selectedProduct != nil {
		p := *r.selectedProduct
		snap.SelectedProduct = &p
	}
	if r.toast != nil {
		t := *r.toast
		snap.Toast = &t
	}
	term, cat := r.searchTerm, r.selectedCategory
	r.mu.Unlock()
	snap.Products = catalog.Filter(r.catalog.Products(), term, cat)
	return snap
}
