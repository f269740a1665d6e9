package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.app/proxy/model"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name              string
		body              []byte
		contentType       string
		expectedKind      model.PayloadKind
		expectedContent   string
		expectedMediaType string
	}{
		{
			name:              "json_is_canonicalized",
			body:              []byte("{\n  \"b\": 1,\n  \"a\": 2\n}"),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindJSON,
			expectedContent:   `{"a":2,"b":1}`,
			expectedMediaType: "application/json",
		},
		{
			name:              "json_with_charset_parameter",
			body:              []byte(`[1, 2, 3]`),
			contentType:       "application/json; charset=utf-8",
			expectedKind:      model.PayloadKindJSON,
			expectedContent:   `[1,2,3]`,
			expectedMediaType: "application/json",
		},
		{
			name:              "json_large_numbers_keep_digits",
			body:              []byte(`{"id": 12345678901234567890, "ratio": 0.10}`),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindJSON,
			expectedContent:   `{"id":12345678901234567890,"ratio":0.10}`,
			expectedMediaType: "application/json",
		},
		{
			name:              "malformed_json_cached_as_text",
			body:              []byte("Internal Server Error"),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindText,
			expectedContent:   "Internal Server Error",
			expectedMediaType: "application/json",
		},
		{
			name:              "trailing_garbage_is_malformed",
			body:              []byte(`{"a":1} trailing`),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindText,
			expectedContent:   `{"a":1} trailing`,
			expectedMediaType: "application/json",
		},
		{
			name:              "trailing_close_brace_is_malformed",
			body:              []byte(`{"a":1}]`),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindText,
			expectedContent:   `{"a":1}]`,
			expectedMediaType: "application/json",
		},
		{
			name:              "trailing_close_bracket_is_malformed",
			body:              []byte(`[1]]`),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindText,
			expectedContent:   `[1]]`,
			expectedMediaType: "application/json",
		},
		{
			name:              "trailing_whitespace_is_valid",
			body:              []byte("{\"b\":1,\"a\":2}\n  "),
			contentType:       "application/json",
			expectedKind:      model.PayloadKindJSON,
			expectedContent:   `{"a":2,"b":1}`,
			expectedMediaType: "application/json",
		},
		{
			name:              "plain_text_keeps_content_type",
			body:              []byte("hello"),
			contentType:       "text/plain; charset=utf-8",
			expectedKind:      model.PayloadKindText,
			expectedContent:   "hello",
			expectedMediaType: "text/plain; charset=utf-8",
		},
		{
			name:              "html_is_text",
			body:              []byte("<p>hi</p>"),
			contentType:       "text/html",
			expectedKind:      model.PayloadKindText,
			expectedContent:   "<p>hi</p>",
			expectedMediaType: "text/html",
		},
		{
			name:              "empty_content_type_defaults_to_text_plain",
			body:              []byte("no header"),
			contentType:       "",
			expectedKind:      model.PayloadKindText,
			expectedContent:   "no header",
			expectedMediaType: "text/plain",
		},
		{
			name:              "invalid_utf8_text_stored_as_binary",
			body:              []byte{0xff, 0xfe, 'a'},
			contentType:       "text/plain",
			expectedKind:      model.PayloadKindBinary,
			expectedContent:   string([]byte{0xff, 0xfe, 'a'}),
			expectedMediaType: "text/plain",
		},
		{
			name:              "binary_keeps_content_type",
			body:              []byte{0x89, 'P', 'N', 'G', 0x00},
			contentType:       "image/png",
			expectedKind:      model.PayloadKindBinary,
			expectedContent:   string([]byte{0x89, 'P', 'N', 'G', 0x00}),
			expectedMediaType: "image/png",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Encode(tc.body, tc.contentType)

			assert.Equal(t, tc.expectedKind, p.Kind)
			assert.Equal(t, tc.expectedContent, string(p.Content))
			assert.Equal(t, tc.expectedMediaType, p.MediaType)
		})
	}
}

func TestEncode_JSONSemanticallyEqual(t *testing.T) {
	p := Encode([]byte(`{"b":1,"a":2}`), "application/json")

	var got map[string]int
	require.NoError(t, json.Unmarshal(p.Content, &got))
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, got)
	assert.Equal(t, "application/json", p.MediaType)
}

func TestForwardFailure(t *testing.T) {
	p := ForwardFailure(errors.New("dial tcp 127.0.0.1:1: connect: connection refused"))

	assert.Equal(t, model.PayloadKindText, p.Kind)
	assert.Equal(t, "Error while forwarding request: dial tcp 127.0.0.1:1: connect: connection refused", string(p.Content))
	assert.Equal(t, DefaultMediaType, p.MediaType)
}

func TestMarshalUnmarshal(t *testing.T) {
	payloads := map[string]model.Payload{
		"json":   model.JSONPayload([]byte(`{"a":2,"b":1}`)),
		"text":   model.TextPayload([]byte("héllo\nworld"), "text/plain; charset=utf-8"),
		"binary": model.BinaryPayload([]byte{0x00, 0x01, 0xff, 0x80}, "application/octet-stream"),
	}

	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(p)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestMarshal_BinaryIsBase64(t *testing.T) {
	data, err := Marshal(model.BinaryPayload([]byte{0xff, 0x00}, "image/gif"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"binary","content":"/wA=","media_type":"image/gif"}`, string(data))
}

func TestUnmarshal_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		data          string
		expectedError string
	}{
		{name: "not_json", data: `nope`, expectedError: "decode stored response"},
		{name: "unknown_kind", data: `{"kind":"xml","content":"","media_type":""}`, expectedError: `unknown payload kind "xml"`},
		{name: "bad_base64", data: `{"kind":"binary","content":"***","media_type":"image/png"}`, expectedError: "decode binary content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestMarshal_UnknownKind(t *testing.T) {
	_, err := Marshal(model.Payload{Kind: "xml"})
	assert.Error(t, err)
}
