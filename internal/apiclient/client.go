package apiclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

const (
	OpGenerate  = "generate"
	OpTemplates = "templates"

	// maxBodySize caps how much of a response is read
	maxBodySize = 32 << 20
)

// Call describes one completed round trip
type Call struct {
	Operation    string
	URL          string
	EntityType   string
	Count        int
	StatusCode   int
	Duration     time.Duration
	ResponseSize int
	Records      int
	Err          error
	Timestamp    time.Time
}

// Observer receives every completed call. It runs on the calling goroutine.
type Observer func(Call)

// Options configures a Client
type Options struct {
	BaseURL string
	// Timeout of zero means no client-side timeout
	Timeout    time.Duration
	TLS        config.TLSConfig
	HTTPClient *http.Client
	Observer   Observer
	// Logger defaults to a no-op logger
	Logger *zerolog.Logger
}

// Client talks to the test data generation service
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	log      zerolog.Logger
}

// New creates a client for the service rooted at opts.BaseURL
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBaseURL, opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = buildHTTPClient(opts.Timeout, opts.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Client{
		baseURL:  base,
		http:     httpClient,
		observer: opts.Observer,
		log:      log,
	}, nil
}

// BaseURL returns the service root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate asks the service for count records of entityType.
// The body may be a list or a single record; both decode into the payload.
func (c *Client) Generate(ctx context.Context, entityType string, count int) (types.GeneratePayload, error) {
	endpoint := c.baseURL + "/testdata/generate/" + url.PathEscape(entityType) +
		"?count=" + strconv.Itoa(count)

	call := Call{Operation: OpGenerate, URL: endpoint, EntityType: entityType, Count: count}
	body, err := c.get(ctx, &call)

	var payload types.GeneratePayload
	if err == nil {
		if decodeErr := json.Unmarshal(body, &payload); decodeErr != nil {
			err = &TransportError{Op: OpGenerate, URL: endpoint, StatusCode: call.StatusCode, Err: decodeErr}
		} else if payload.IsList {
			call.Records = len(payload.List)
		} else {
			call.Records = 1
		}
	}

	c.finish(call, err)
	return payload, err
}

// ProbeTemplates checks that the templates endpoint answers successfully.
// The payload is discarded.
func (c *Client) ProbeTemplates(ctx context.Context) error {
	call := Call{Operation: OpTemplates, URL: c.baseURL + "/testdata/templates"}
	_, err := c.get(ctx, &call)
	c.finish(call, err)
	return err
}

// Templates lists the template names the service offers
func (c *Client) Templates(ctx context.Context) ([]string, error) {
	call := Call{Operation: OpTemplates, URL: c.baseURL + "/testdata/templates"}
	body, err := c.get(ctx, &call)

	var names []string
	if err == nil {
		if decodeErr := json.Unmarshal(body, &names); decodeErr != nil {
			err = &TransportError{Op: OpTemplates, URL: call.URL, StatusCode: call.StatusCode, Err: decodeErr}
		}
		call.Records = len(names)
	}

	c.finish(call, err)
	return names, err
}

// get performs one GET and fills status, size and duration on call
func (c *Client) get(ctx context.Context, call *Call) ([]byte, error) {
	call.Timestamp = time.Now()
	start := time.Now()
	defer func() { call.Duration = time.Since(start) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, call.URL, nil)
	if err != nil {
		return nil, &TransportError{Op: call.Operation, URL: call.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: call.Operation, URL: call.URL, Err: err}
	}
	defer resp.Body.Close()

	call.StatusCode = resp.StatusCode
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	call.ResponseSize = len(body)
	if err != nil {
		return nil, &TransportError{Op: call.Operation, URL: call.URL, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, &TransportError{Op: call.Operation, URL: call.URL, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	return body, nil
}

func (c *Client) finish(call Call, err error) {
	call.Err = err
	event := c.log.Debug()
	if err != nil {
		event = c.log.Warn().Err(err)
	}
	event.Str("op", call.Operation).
		Str("url", call.URL).
		Int("status", call.StatusCode).
		Dur("duration", call.Duration).
		Msg("api call")

	if c.observer != nil {
		c.observer(call)
	}
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(timeout time.Duration, tlsConfig config.TLSConfig) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig.Enabled() {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
