package router

// View identifies the single active top-level screen. Exactly one view is
// active at a time; the Router guarantees each view's required context is
// established atomically on every transition into it.
type View string

const (
	ViewHome      View = "home"
	ViewCatalog   View = "catalog"
	ViewProduct   View = "product"
	ViewCheckout  View = "checkout"
	ViewDashboard View = "dashboard"
	ViewInfo      View = "info"
)

// InfoPage identifies a static information page rendered by the info view.
type InfoPage string

const (
	InfoContact    InfoPage = "contact"
	InfoTerms      InfoPage = "terms"
	InfoPrivacy    InfoPage = "privacy"
	InfoRefunds    InfoPage = "refunds"
	InfoFAQ        InfoPage = "faq"
	InfoActivation InfoPage = "activation"
	InfoTicket     InfoPage = "ticket"
)

// Valid reports whether p is one of the known info pages.
func (p InfoPage) Valid() bool {
	switch p {
	case InfoContact, InfoTerms, InfoPrivacy, InfoRefunds,
		InfoFAQ, InfoActivation, InfoTicket:
		return true
	}
	return false
}

// ToastKind classifies a transient notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
)

// Toast is a transient, self-expiring notification overlay.
type Toast struct {
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}
