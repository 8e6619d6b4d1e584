package device

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// Body is a response payload that is either structured JSON or raw text.
// The distinction is resolved once, at the HTTP boundary, so callers never
// re-sniff strings.
type Body struct {
	structured map[string]interface{}
	raw        string
	isJSON     bool
}

// StructuredBody wraps a decoded JSON object.
func StructuredBody(m map[string]interface{}) Body {
	return Body{structured: m, isJSON: true}
}

// RawBody wraps unparsed text.
func RawBody(s string) Body {
	return Body{raw: s}
}

// Structured returns the decoded object and whether the body was JSON.
func (b Body) Structured() (map[string]interface{}, bool) {
	return b.structured, b.isJSON
}

// Text renders the body for storage: indented JSON when structured, the
// raw text otherwise.
func (b Body) Text() string {
	if !b.isJSON {
		return b.raw
	}
	out, err := json.MarshalIndent(b.structured, "", "  ")
	if err != nil {
		return b.raw
	}
	return string(out)
}

// RESTClient retrieves configuration from a device's management API.
type RESTClient struct {
	host     string
	user     string
	password string
	token    string
	baseURL  string
	client   *http.Client
}

// NewRESTClient builds a client from an inventory record. Plain HTTP on
// port 80 unless the record names a port; HTTPS targets skip certificate
// verification since lab devices carry self-signed certs.
func NewRESTClient(d model.Device, useHTTPS bool, timeout time.Duration) *RESTClient {
	scheme := "http"
	defPort := 80
	if useHTTPS {
		scheme = "https"
		defPort = 443
	}
	port := d.Port
	if port == 0 {
		port = defPort
	}

	base := fmt.Sprintf("%s://%s", scheme, d.Host)
	if port != defPort {
		base = fmt.Sprintf("%s://%s:%d", scheme, d.Host, port)
	}

	return &RESTClient{
		host:     d.Host,
		user:     d.Username,
		password: d.Password,
		baseURL:  base,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// WithToken switches the client to bearer-token auth instead of basic
// auth.
func (c *RESTClient) WithToken(token string) *RESTClient {
	c.token = token
	return c
}

// get performs one request and resolves the payload into a Body.
func (c *RESTClient) get(ctx context.Context, url string) (Body, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Body{}, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.user != "" && c.password != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Body{}, 0, fmt.Errorf("%w: %v", util.ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Body{}, resp.StatusCode, err
	}

	var m map[string]interface{}
	if json.Unmarshal(raw, &m) == nil {
		return StructuredBody(m), resp.StatusCode, nil
	}
	return RawBody(string(raw)), resp.StatusCode, nil
}

// GetConfig fetches the configuration endpoint for the device.
func (c *RESTClient) GetConfig(ctx context.Context, endpoint string) (Body, error) {
	return c.GetConfigURL(ctx, c.baseURL+endpoint)
}

// GetConfigURL fetches configuration from an explicit URL, used when the
// inventory record overrides the model-derived endpoint.
func (c *RESTClient) GetConfigURL(ctx context.Context, url string) (Body, error) {
	body, status, err := c.get(ctx, url)
	if err != nil {
		return Body{}, err
	}
	if status != http.StatusOK {
		return Body{}, fmt.Errorf("HTTP %d from %s", status, url)
	}
	return body, nil
}

// probe tries endpoints in order and returns the first successful body.
// ok=false means every candidate was exhausted, which is an expected
// outcome, not an error.
func (c *RESTClient) probe(ctx context.Context, endpoints []string) (Body, bool) {
	for _, ep := range endpoints {
		body, status, err := c.get(ctx, c.baseURL+ep)
		if err == nil && status == http.StatusOK {
			return body, true
		}
	}
	return Body{}, false
}

// VersionInfo probes the known version endpoints.
func (c *RESTClient) VersionInfo(ctx context.Context) (Body, bool) {
	return c.probe(ctx, versionEndpoints)
}

// InterfacesInfo probes the known interface-state endpoints.
func (c *RESTClient) InterfacesInfo(ctx context.Context) (Body, bool) {
	return c.probe(ctx, interfaceEndpoints)
}

// TestConnection checks that the device answers HTTP at all. Any status
// counts; an error status still proves reachability.
func (c *RESTClient) TestConnection(ctx context.Context) error {
	_, _, err := c.get(ctx, c.baseURL+"/")
	return err
}
