package domain

// Destination is a single entry of the destination catalog
type Destination struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CatalogResponse is the envelope returned by the catalog endpoint
type CatalogResponse struct {
	Success bool          `json:"success"`
	Data    []Destination `json:"data"`
	Error   string        `json:"error,omitempty"`
}

// DestinationResponse is the envelope returned by the detail endpoint
type DestinationResponse struct {
	Success bool         `json:"success"`
	Data    *Destination `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// DefaultRoutePrefix is the detail route prefix a destination links to
const DefaultRoutePrefix = "/destinations/"

// Route returns the detail route for a destination under the given prefix.
// An empty prefix falls back to DefaultRoutePrefix.
func Route(prefix string, d Destination) string {
	if prefix == "" {
		prefix = DefaultRoutePrefix
	}
	if prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	return prefix + d.Slug
}
