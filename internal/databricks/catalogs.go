package databricks

import (
	"context"
	"fmt"
	"net/url"
)

type Catalog struct {
	Name    string `json:"name" yaml:"name"`
	Owner   string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Type    string `json:"catalog_type,omitempty" yaml:"catalog_type,omitempty"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

type listCatalogsResponse struct {
	Catalogs      []Catalog `json:"catalogs"`
	NextPageToken string    `json:"next_page_token"`
}

// ListCatalogs returns the Unity Catalog catalogs visible to the caller.
func (c *Client) ListCatalogs(ctx context.Context) ([]Catalog, error) {
	var out []Catalog
	token := ""
	for {
		q := url.Values{}
		if token != "" {
			q.Set("page_token", token)
		}
		var resp listCatalogsResponse
		if err := c.get(ctx, "/api/2.1/unity-catalog/catalogs", q, &resp); err != nil {
			return nil, fmt.Errorf("list catalogs: %w", err)
		}
		out = append(out, resp.Catalogs...)
		if resp.NextPageToken == "" {
			return out, nil
		}
		token = resp.NextPageToken
	}
}
