// Package nearlake fetches NEAR block data over HTTP from a store laid out
// the way NEAR Lake publishes it: one directory per zero-padded block
// height, containing block.json plus one shard_{N}.json per shard.
package nearlake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnexpectedStatus indicates the data store answered with a status code
// other than 200 or 404.
var ErrUnexpectedStatus = errors.New("unexpected response status from lake data store")

// errNotFound signals a 404 internally; FetchBlock translates it to
// lakestream.ErrBlockNotFound.
var errNotFound = errors.New("object not found")

type client struct {
	httpClient *http.Client // HTTP client used for all requests
	baseURL    string       // Root of the lake data store, without trailing slash
}

// NewClient returns a lake data client reading from baseURL using the given
// HTTP client.
func NewClient(httpClient *http.Client, baseURL string) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// fetchJSON retrieves one object from the store and decodes it into v.
func (c *client) fetchJSON(ctx context.Context, key string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+key, nil)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(res.Body).Decode(v)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, key)
	default:
		return fmt.Errorf("%w: [%d] %s", ErrUnexpectedStatus, res.StatusCode, key)
	}
}
