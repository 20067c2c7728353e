// Package sheet fetches remote price sheets. A published spreadsheet URL
// returns plain CSV text, which is handed unchanged to the same parsers that
// read local statement files; this package only does the HTTP part.
package sheet

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// Client fetches CSV text over HTTP. The zero value is not usable; use New.
type Client struct {
	http *http.Client
}

// New returns a Client whose responses are cached on disk for the rest of
// the day. Published sheets update at most daily, and the cache keeps
// repeated dashboard refreshes from hammering the host.
func New() *Client {
	c := new(http.Client)
	c.Transport = &diskCache{base: http.DefaultTransport}
	return &Client{http: c}
}

// NewUncached returns a Client that always hits the network.
func NewUncached() *Client {
	return &Client{http: http.DefaultClient}
}

// FetchCSV GETs addr and returns the body as text. It refuses non-200
// responses and bodies that look like HTML, the usual symptom of a sheet
// whose publish-to-web link has expired.
func (c *Client) FetchCSV(addr string) (string, error) {
	resp, err := c.http.Get(addr)
	if err != nil {
		return "", fmt.Errorf("cannot http GET %q: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return "", fmt.Errorf("cannot read response body of %q: %w", addr, err)
	}

	text := buf.String()
	if looksLikeHTML(text) {
		return "", fmt.Errorf("response from %q is HTML, not CSV; is the sheet still published?", addr)
	}
	return text, nil
}

func looksLikeHTML(text string) bool {
	head := text
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.Contains([]byte(head), []byte("<html")) || bytes.Contains([]byte(head), []byte("<!DOCTYPE"))
}

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key includes today's date, so the local cache expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("sheet-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}
