package powerbi

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// fakeTransport records every call and serves canned responses keyed by
// path.
type fakeTransport struct {
	gets      []recordedCall
	posts     []recordedCall
	files     []recordedCall
	responses map[string]json.RawMessage
	err       error
}

type recordedCall struct {
	path     string
	params   url.Values
	payload  any
	filename string
	content  string
}

func (f *fakeTransport) respond(path string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if body, ok := f.responses[path]; ok {
		return body, nil
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeTransport) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	f.gets = append(f.gets, recordedCall{path: path, params: params})
	return f.respond(path)
}

func (f *fakeTransport) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	f.posts = append(f.posts, recordedCall{path: path, payload: payload})
	return f.respond(path)
}

func (f *fakeTransport) PostFile(ctx context.Context, path string, params url.Values, filename string, r io.Reader) (json.RawMessage, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.files = append(f.files, recordedCall{path: path, params: params, filename: filename, content: string(content)})
	return f.respond(path)
}
