package proxy

import (
	"io"
	"net/http"
	"strings"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/proxy/model"
)

// CacheStatusHeader tells the client whether the body was replayed.
const CacheStatusHeader = "X-Cache-Status"

// Proxy forwards every request that no other endpoint handles.
//
//encore:api public raw path=/!fallback
func (s *Service) Proxy(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		rlog.Error("failed to read request body", "error", err, "path", req.URL.Path)
		errs.HTTPError(w, &errs.Error{Code: errs.InvalidArgument, Message: "failed to read request body"})
		return
	}

	outcome, err := s.business.Forward(req.Context(), &model.InboundRequest{
		Method:         req.Method,
		Path:           req.URL.EscapedPath(),
		RawQuery:       req.URL.RawQuery,
		Header:         req.Header,
		Body:           body,
		IdempotencyKey: extractIdempotencyKey(req, s.keyHeader),
	})
	if err != nil {
		errs.HTTPError(w, err)
		return
	}

	writeOutcome(w, outcome)
}

// extractIdempotencyKey reads the key header verbatim, so `abc` and `"abc"`
// are different keys. An empty result means the request is not deduplicated.
func extractIdempotencyKey(req *http.Request, header string) string {
	return strings.TrimSpace(req.Header.Get(header))
}

func writeOutcome(w http.ResponseWriter, outcome *model.Outcome) {
	if outcome.Payload.MediaType != "" {
		w.Header().Set("Content-Type", outcome.Payload.MediaType)
	}
	w.Header().Set(CacheStatusHeader, string(outcome.CacheStatus))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(outcome.Payload.Content)
}
