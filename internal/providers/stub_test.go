package providers

import (
	"encoding/json"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
)

// recordedRequest is a request seen by stubDoer
type recordedRequest struct {
	Method string
	URL    string
	Header fhttp.Header
	Body   []byte
}

func (r recordedRequest) JSON() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(r.Body, &out)
	return out
}

// stubDoer answers requests from a handler func and records them
type stubDoer struct {
	handle   func(req *fhttp.Request) (int, string)
	err      error
	requests []recordedRequest
}

func (d *stubDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	rec := recordedRequest{Method: req.Method, URL: req.URL.String(), Header: req.Header.Clone()}
	if req.Body != nil {
		rec.Body, _ = io.ReadAll(req.Body)
	}
	d.requests = append(d.requests, rec)

	if d.err != nil {
		return nil, d.err
	}
	status, body := d.handle(req)
	return &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func respond(status int, body string) func(*fhttp.Request) (int, string) {
	return func(*fhttp.Request) (int, string) { return status, body }
}
