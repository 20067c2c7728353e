package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// Quote pulls a single price out of a JSON quote endpoint using a JSONPath
// expression, for feeds that expose a chart API instead of a CSV export.
// The path typically selects the last point of an intraday series, e.g.
// "$.series.intraday.data[-1:][1]".
func (c *Client) Quote(addr, path string) (float64, error) {
	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", addr, err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error evaluating %q on %q: %w", path, addr, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
			return f, nil
		}
	}
	return math.NaN(), fmt.Errorf("path %q on %q did not select a number: %v", path, addr, jval)
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func (c *Client) jwget(addr string, data any) error {
	resp, err := c.http.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
