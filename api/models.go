package api

import (
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/checkout"
	"github.com/royalkeys/royalkeys/router"
	"github.com/royalkeys/royalkeys/session"
)

// ListCatalogResponse is returned from GET /catalog.
type ListCatalogResponse struct {
	Products   []catalog.Product `json:"products"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ListCategoriesResponse is returned from GET /catalog/categories.
type ListCategoriesResponse struct {
	Categories []catalog.Category `json:"categories"`
}

// NavStateResponse is returned from GET /nav/state and from every
// navigation transition.
type NavStateResponse struct {
	View             router.View       `json:"view"`
	SelectedProduct  *catalog.Product  `json:"selected_product,omitempty"`
	SelectedCategory catalog.Category  `json:"selected_category,omitempty"`
	SearchTerm       string            `json:"search_term,omitempty"`
	ActiveInfoPage   router.InfoPage   `json:"active_info_page,omitempty"`
	Toast            *router.Toast     `json:"toast,omitempty"`
	Products         []catalog.Product `json:"products"`
}

// NavCategoryRequest is the JSON body for POST /nav/category.
type NavCategoryRequest struct {
	Category catalog.Category `json:"category"`
}

// NavSearchRequest is the JSON body for POST /nav/search.
type NavSearchRequest struct {
	Term string `json:"term"`
}

// NavProductRequest is the JSON body for POST /nav/product.
type NavProductRequest struct {
	ProductID string `json:"product_id"`
}

// NavInfoRequest is the JSON body for POST /nav/info.
type NavInfoRequest struct {
	Page router.InfoPage `json:"page"`
}

// SessionResponse is returned from GET /session.
type SessionResponse struct {
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"is_logged_in"`
	KeyCount   int    `json:"key_count"`
}

// ListKeysResponse is returned from GET /session/keys.
type ListKeysResponse struct {
	Keys []session.LicenseKey `json:"keys"`
}

// SubmitCheckoutRequest is the JSON body for POST /checkout/submit.
type SubmitCheckoutRequest struct {
	Payment checkout.PaymentDetails `json:"payment"`
}

// SubmitCheckoutResponse is returned from POST /checkout/submit.
type SubmitCheckoutResponse struct {
	Key  session.LicenseKey `json:"key"`
	View router.View        `json:"view"`
}

// AssistantChatRequest is the JSON body for POST /assistant/chat.
type AssistantChatRequest struct {
	Prompt string `json:"prompt"`
}

// AssistantChatResponse is returned from POST /assistant/chat.
type AssistantChatResponse struct {
	Reply string `json:"reply"`
}

// AdminLoginRequest is the JSON body for POST /admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminResetPasswordRequest is the JSON body for POST /admin/reset-password.
type AdminResetPasswordRequest struct {
	Email string `json:"email"`
}

// AdminListProductsResponse is returned from GET /admin/products.
type AdminListProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	Error string `json:"error"`
}
