package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"organizer-console/internal/config"
	"organizer-console/internal/logging"
)

const (
	maxResponseBytes = 8 << 20
	readyProbeDelay  = 500 * time.Millisecond
	readyProbeMax    = 5 * time.Second
)

// OrganizerClient talks to the file-organizer backend. Every response body is
// treated as JSON; a body that does not parse is a transport failure.
type OrganizerClient struct {
	http      *http.Client
	endpoints config.APIEndpoints
	logger    *logging.Logger
}

func New(httpClient *http.Client, endpoints config.APIEndpoints, logger *logging.Logger) *OrganizerClient {
	if logger == nil {
		panic("client.New: logger must not be nil")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OrganizerClient{http: httpClient, endpoints: endpoints, logger: logger}
}

func (c *OrganizerClient) Endpoints() config.APIEndpoints {
	return c.endpoints
}

// roundTrip sends one request and returns the raw JSON body of a 2xx
// response. Non-2xx responses become *HTTPStatusError, everything else that
// prevents reading a JSON body becomes *TransportError.
func (c *OrganizerClient) roundTrip(ctx context.Context, op string, method string, url string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("sending "+op,
			logging.Field("url", url),
			logging.Field("payload", logging.FormatHTTPPayload(encoded)),
		)
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.logger.Debugf("%s %s -> %s", method, url, resp.Status)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if !json.Valid(data) {
		c.logger.Warn(op+" returned a non-JSON body",
			logging.Field("status", resp.Status),
			logging.Field("content_type", resp.Header.Get("Content-Type")),
			logging.Field("response", logging.Truncate(string(data))),
		)
		return nil, &TransportError{Op: op, Err: errNotJSON}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := newHTTPStatusError(resp, data)
		c.logger.Warn(op+" rejected",
			logging.Field("status", resp.Status),
			logging.Field("response", logging.FormatHTTPPayload(data)),
		)
		return nil, statusErr
	}
	return data, nil
}

func (c *OrganizerClient) decode(op string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("invalid "+op+" JSON",
			logging.Field("error", err),
			logging.Field("response", logging.FormatHTTPPayload(data)),
		)
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
