package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// BearerScheme is the name of the security scheme protecting owner-only routes.
const BearerScheme = "bearer"

var bearer = []map[string][]string{{BearerScheme: {}}}

// NewAPIConfig returns the huma configuration with the bearer scheme declared.
func NewAPIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}

	config.Components.SecuritySchemes[BearerScheme] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}

	return config
}

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, accountHandler *AccountHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Shortens a URL on behalf of the authenticated caller. Each long URL may be shortened once.",
		Tags:          []string{"URLs"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-urls",
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List short URLs",
		Tags:        []string{"URLs"},
	}, urlHandler.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "get-url",
		Method:      http.MethodGet,
		Path:        "/api/urls/{id}",
		Summary:     "Get short URL details",
		Tags:        []string{"URLs"},
		Security:    bearer,
	}, urlHandler.GetURLDetails)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-url",
		Method:        http.MethodDelete,
		Path:          "/api/urls/{id}",
		Summary:       "Delete short URL",
		Description:   "Deletes a mapping. Only its owner or an admin may do so.",
		Tags:          []string{"URLs"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, urlHandler.DeleteURL)

	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/users/register",
		Summary:     "Register an account",
		Tags:        []string{"Users"},
	}, accountHandler.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/users/login",
		Summary:     "Log in",
		Tags:        []string{"Users"},
	}, accountHandler.Login)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)
}
