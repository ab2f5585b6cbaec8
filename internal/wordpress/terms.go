package wordpress

import (
	"aineoo/internal/apperr"
	"aineoo/internal/article"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Taxonomy endpoints.
const (
	Categories = "categories"
	Tags       = "tags"
)

type term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// termExists is the body WordPress returns when creating a duplicate term.
type termExists struct {
	Code string `json:"code"`
	Data struct {
		TermID int `json:"term_id"`
	} `json:"data"`
}

// EnsureTerm returns the id of the category or tag called name, creating it
// when no exact case-insensitive match exists.
func (c *Client) EnsureTerm(ctx context.Context, taxonomy, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("term name: %w", apperr.ErrInvalidInput)
	}
	key := taxonomy + ":" + strings.ToLower(name)

	c.mu.Lock()
	id, ok := c.terms[key]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	var found []term
	query := url.Values{"search": {name}, "per_page": {"100"}}
	if err := c.getJSON(ctx, "/"+taxonomy, query, &found); err != nil {
		return 0, fmt.Errorf("failed to search %s %q: %w", taxonomy, name, err)
	}
	for _, t := range found {
		if strings.EqualFold(strings.TrimSpace(t.Name), name) {
			c.remember(key, t.ID)
			return t.ID, nil
		}
	}

	var created term
	payload := map[string]string{"name": name, "slug": article.Slugify(name)}
	err := c.postJSON(ctx, "/"+taxonomy, payload, &created, http.StatusOK, http.StatusCreated)
	if err != nil {
		if id := existingTermID(err); id > 0 {
			c.remember(key, id)
			return id, nil
		}
		return 0, fmt.Errorf("failed to create %s %q: %w", taxonomy, name, err)
	}
	c.remember(key, created.ID)
	return created.ID, nil
}

func (c *Client) remember(key string, id int) {
	c.mu.Lock()
	c.terms[key] = id
	c.mu.Unlock()
}

func existingTermID(err error) int {
	var wpErr *apperr.WordPressError
	if !errors.As(err, &wpErr) || wpErr.Status != http.StatusBadRequest {
		return 0
	}
	var body termExists
	if json.Unmarshal([]byte(wpErr.Body), &body) != nil || body.Code != "term_exists" {
		return 0
	}
	return body.Data.TermID
}
