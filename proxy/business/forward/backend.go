package forward

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"encore.dev/rlog"

	"encore.app/proxy/model"
)

// UpstreamResponse is the part of a backend response the proxy keeps.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// ForwardError is any failure to get a complete response from the backend:
// connection errors, timeouts, and truncated bodies.
type ForwardError struct {
	URL string
	Err error
}

func (e *ForwardError) Error() string {
	return e.Err.Error()
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}

// callBackend sends req to target with its method, headers, query and body.
// Accept-Encoding is left to the transport so compressed bodies arrive
// decoded, since the proxy replays bodies without a Content-Encoding header.
func (b *business) callBackend(ctx context.Context, target string, req *model.InboundRequest) (*UpstreamResponse, error) {
	url := target
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}

	outbound, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &ForwardError{URL: url, Err: err}
	}
	if req.Header != nil {
		outbound.Header = req.Header.Clone()
	}
	outbound.Header.Del("Accept-Encoding")

	rlog.Debug("forwarding request", "method", req.Method, "url", url)

	resp, err := b.client.Do(outbound)
	if err != nil {
		return nil, &ForwardError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ForwardError{URL: url, Err: err}
	}

	rlog.Debug("received response", "url", url, "status_code", resp.StatusCode)

	return &UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
