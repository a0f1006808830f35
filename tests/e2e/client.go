package e2e

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"trackedkv/tests/e2e/apiclient"
)

// APIError surfaces non-2xx responses from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

//nolint:errorlint
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

var ErrNotFound = errors.New("not found")

type Client struct {
	api *apiclient.ClientWithResponses
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	var opts []apiclient.ClientOption
	if httpClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(httpClient))
	}
	api, err := apiclient.NewClientWithResponses(baseURL, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create api client: %v", err))
	}
	return &Client{api: api}
}

type KeyValue struct {
	Key   []byte
	Value []byte
}

// Change is one decoded history entry. OldExists and NewExists tell
// absent values apart from empty ones.
type Change struct {
	ID        uuid.UUID
	Seq       int64
	Op        string
	Key       []byte
	OldValue  []byte
	OldExists bool
	NewValue  []byte
	NewExists bool
	Timestamp time.Time
}

// Put creates or overwrites a key with the given value.
func (c *Client) Put(ctx context.Context, key, value []byte) (KeyValue, error) {
	resp, err := c.api.PutKeyWithResponse(ctx, encodeBase64(key), apiclient.PutKeyJSONRequestBody{
		Value: encodeBase64(value),
	})
	if err != nil {
		return KeyValue{}, err
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		if resp.JSON200 == nil {
			return KeyValue{}, fmt.Errorf("missing body for 200 response")
		}
		return decodeWireKeyValue(*resp.JSON200)
	default:
		return KeyValue{}, newAPIError(resp.StatusCode(), resp.Body)
	}
}

// Get retrieves a key; returns ErrNotFound on 404.
func (c *Client) Get(ctx context.Context, key []byte) (KeyValue, error) {
	resp, err := c.api.GetKeyWithResponse(ctx, encodeBase64(key))
	if err != nil {
		return KeyValue{}, err
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		if resp.JSON200 == nil {
			return KeyValue{}, fmt.Errorf("missing body for 200 response")
		}
		return decodeWireKeyValue(*resp.JSON200)
	case http.StatusNotFound:
		return KeyValue{}, ErrNotFound
	default:
		return KeyValue{}, newAPIError(resp.StatusCode(), resp.Body)
	}
}

// Delete removes a key; returns ErrNotFound when the key does not exist.
func (c *Client) Delete(ctx context.Context, key []byte) error {
	resp, err := c.api.DeleteKeyWithResponse(ctx, encodeBase64(key))
	if err != nil {
		return err
	}
	switch resp.StatusCode() {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return newAPIError(resp.StatusCode(), resp.Body)
	}
}

// Scan returns ordered key/value pairs in [fromKey, endKey).
func (c *Client) Scan(ctx context.Context, fromKey, endKey []byte) ([]KeyValue, error) {
	from := encodeBase64(fromKey)
	end := encodeBase64(endKey)
	resp, err := c.api.ScanRangeWithResponse(ctx, &apiclient.ScanRangeParams{
		FromKey: &from,
		EndKey:  &end,
	})
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		if resp.JSON200 == nil {
			return nil, fmt.Errorf("missing body for 200 response")
		}
		out := make([]KeyValue, 0, len(*resp.JSON200))
		for _, w := range *resp.JSON200 {
			kv, err := decodeWireKeyValue(w)
			if err != nil {
				return nil, err
			}
			out = append(out, kv)
		}
		return out, nil
	default:
		return nil, newAPIError(resp.StatusCode(), resp.Body)
	}
}

// History returns the change log, oldest first. limit > 0 restricts the
// result to the most recent limit entries.
func (c *Client) History(ctx context.Context, limit int) ([]Change, error) {
	params := &apiclient.GetHistoryParams{}
	if limit > 0 {
		params.Limit = &limit
	}
	resp, err := c.api.GetHistoryWithResponse(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return nil, fmt.Errorf("missing body for 200 response")
	}
	out := make([]Change, 0, len(*resp.JSON200))
	for _, w := range *resp.JSON200 {
		ch, err := decodeWireChange(w)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// Revert undoes the most recent steps history entries and reports how
// many were actually undone.
func (c *Client) Revert(ctx context.Context, steps int) (int, error) {
	resp, err := c.api.RevertHistoryWithResponse(ctx, apiclient.RevertHistoryJSONRequestBody{
		Steps: steps,
	})
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return 0, fmt.Errorf("missing body for 200 response")
	}
	return resp.JSON200.Reverted, nil
}

func encodeBase64(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

func decodeWireKeyValue(w apiclient.KeyValue) (KeyValue, error) {
	keyBytes, err := base64.URLEncoding.DecodeString(w.Key)
	if err != nil {
		return KeyValue{}, err
	}
	valBytes, err := base64.URLEncoding.DecodeString(w.Value)
	if err != nil {
		return KeyValue{}, err
	}
	return KeyValue{Key: keyBytes, Value: valBytes}, nil
}

func decodeWireChange(w apiclient.ChangeEntry) (Change, error) {
	key, err := base64.URLEncoding.DecodeString(w.Key)
	if err != nil {
		return Change{}, err
	}
	ch := Change{
		ID:        w.Id,
		Seq:       w.Seq,
		Op:        string(w.Op),
		Key:       key,
		Timestamp: w.Timestamp,
	}
	if w.OldValue != nil {
		old, err := base64.URLEncoding.DecodeString(*w.OldValue)
		if err != nil {
			return Change{}, err
		}
		ch.OldValue = old
		ch.OldExists = true
	}
	if w.NewValue != nil {
		val, err := base64.URLEncoding.DecodeString(*w.NewValue)
		if err != nil {
			return Change{}, err
		}
		ch.NewValue = val
		ch.NewExists = true
	}
	return ch, nil
}

func newAPIError(status int, body []byte) error {
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	return &APIError{
		StatusCode: status,
		Body:       string(body),
	}
}
