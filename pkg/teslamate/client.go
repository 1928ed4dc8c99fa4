package teslamate

import (
	"context"
	_ "embed" // Used to embed version for use with user agent and help text
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teslamate-tools/teslamate-query/internal/log"
)

var (
	//go:embed version.txt
	libraryVersion string

	// Version identifies this release in help text and the default User-Agent.
	Version = strings.TrimSpace(libraryVersion)
)

const (
	// MaxResponseLength bounds the number of bytes read from a response body.
	MaxResponseLength = 10000000

	HeaderClientID     = "CF-Access-Client-Id"
	HeaderClientSecret = "CF-Access-Client-Secret"

	// HeaderRequestID carries a random UUID unique to each request, for matching client logs with
	// proxy logs.
	HeaderRequestID = "X-Request-Id"
)

func buildUserAgent(app string) string {
	library := "teslamate-query/" + Version
	if app != "" {
		return fmt.Sprintf("%s %s", app, library)
	}
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return library
	}
	for _, info := range build.Settings {
		if info.Key == "vcs.revision" && len(info.Value) > 8 {
			return fmt.Sprintf("%s (%s)", library, info.Value[0:8])
		}
	}
	return library
}

// Config holds everything needed to reach a TeslaMate API server. It is passed to [New] explicitly;
// the package keeps no global configuration.
type Config struct {
	// BaseURL is the scheme and host (and optional path prefix) of the API, e.g.
	// "https://teslamate.example.com".
	BaseURL string

	// ClientID and ClientSecret are sent as Cloudflare Access service-token headers. Empty values
	// are not sent.
	ClientID     string
	ClientSecret string

	// Headers are added to every request.
	Headers map[string]string

	// Timeout bounds each request. Zero means no timeout beyond the context's.
	Timeout time.Duration

	UserAgent string
}

// Client issues read-only queries against a TeslaMate API server.
type Client struct {
	baseURL   string
	headers   http.Header
	userAgent string
	client    http.Client
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL '%s': scheme and host are required", cfg.BaseURL)
	}

	headers := make(http.Header)
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}
	if cfg.ClientID != "" {
		headers.Set(HeaderClientID, cfg.ClientID)
	}
	if cfg.ClientSecret != "" {
		headers.Set(HeaderClientSecret, cfg.ClientSecret)
	}

	return &Client{
		baseURL:   base,
		headers:   headers,
		userAgent: buildUserAgent(cfg.UserAgent),
		client:    http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Get sends an HTTP GET request to endpoint and returns the body of a 200 response.
//
// The endpoint should contain only the path (e.g., "api/v1/cars"); the scheme and host are taken
// from the Config used to create the Client.
func (c *Client) Get(ctx context.Context, endpoint string) ([]byte, error) {
	endpoint = strings.TrimLeft(endpoint, "/")
	target := c.baseURL + "/" + endpoint
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &QueryError{Endpoint: endpoint, Kind: KindTransport, Err: err}
	}
	request.Header = c.headers.Clone()
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	request.Header.Set(HeaderRequestID, requestID)

	log.Debug("Requesting %s (request ID %s)...", target, requestID)
	response, err := c.client.Do(request)
	if err != nil {
		return nil, &QueryError{Endpoint: endpoint, Kind: KindTransport, Err: err}
	}
	defer response.Body.Close()

	reader := io.LimitedReader{R: response.Body, N: MaxResponseLength}
	body, err := io.ReadAll(&reader)
	if err != nil {
		return nil, &QueryError{Endpoint: endpoint, Kind: KindTransport, Err: err}
	}
	log.Debug("Server returned %d: %s", response.StatusCode, body)

	if response.StatusCode != http.StatusOK {
		return nil, &HTTPError{Endpoint: endpoint, Code: response.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &QueryError{Endpoint: endpoint, Kind: KindDecode, Err: err}
	}
	return nil
}

func malformed(endpoint, member string) error {
	return &QueryError{
		Endpoint: endpoint,
		Kind:     KindMalformed,
		Err:      fmt.Errorf("%w: %s", ErrMalformedResponse, member),
	}
}

func vehicleEndpoint(id int, resource string) string {
	return fmt.Sprintf("api/v1/cars/%d/%s", id, resource)
}

const carsEndpoint = "api/v1/cars"

// ListVehicles returns every vehicle known to the API, in the order the API returned them.
func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var reply carsResponse
	if err := c.getJSON(ctx, carsEndpoint, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, malformed(carsEndpoint, "data")
	}
	if reply.Data.Cars == nil {
		return nil, malformed(carsEndpoint, "data.cars")
	}
	for i := range reply.Data.Cars {
		if member := reply.Data.Cars[i].missing(); member != "" {
			return nil, malformed(carsEndpoint, fmt.Sprintf("data.cars[%d].%s", i, member))
		}
	}
	return reply.Data.Cars, nil
}

// PrimaryVehicleID returns the car_id of the first vehicle in the list.
//
// The client supports exactly one current vehicle: the first one the API returns. Vehicles after
// the first are never queried. The ID is fetched on every call and never cached. Returns
// ErrNoVehicles if the list is empty. Only car_id is required of the first entry.
func (c *Client) PrimaryVehicleID(ctx context.Context) (int, error) {
	var reply carIDsResponse
	if err := c.getJSON(ctx, carsEndpoint, &reply); err != nil {
		return 0, err
	}
	if reply.Data == nil {
		return 0, malformed(carsEndpoint, "data")
	}
	if reply.Data.Cars == nil {
		return 0, malformed(carsEndpoint, "data.cars")
	}
	if len(reply.Data.Cars) == 0 {
		return 0, ErrNoVehicles
	}
	if reply.Data.Cars[0].CarID == nil {
		return 0, malformed(carsEndpoint, "data.cars[0].car_id")
	}
	return *reply.Data.Cars[0].CarID, nil
}

// Status returns the current state of vehicle id.
func (c *Client) Status(ctx context.Context, id int) (*VehicleStatus, error) {
	endpoint := vehicleEndpoint(id, "status")
	var reply statusResponse
	if err := c.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, malformed(endpoint, "data")
	}
	if reply.Data.Status == nil {
		return nil, malformed(endpoint, "data.status")
	}
	if member := reply.Data.Status.missing(); member != "" {
		return nil, malformed(endpoint, "data.status."+member)
	}
	return reply.Data.Status, nil
}

// Charges returns the first page of charging sessions of vehicle id.
func (c *Client) Charges(ctx context.Context, id int) ([]Charge, error) {
	endpoint := vehicleEndpoint(id, "charges")
	var reply chargesResponse
	if err := c.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, malformed(endpoint, "data")
	}
	if reply.Data.Charges == nil {
		return nil, malformed(endpoint, "data.charges")
	}
	for i := range reply.Data.Charges {
		if member := reply.Data.Charges[i].missing(); member != "" {
			return nil, malformed(endpoint, fmt.Sprintf("data.charges[%d].%s", i, member))
		}
	}
	return reply.Data.Charges, nil
}

// Drives returns the first page of trips of vehicle id.
func (c *Client) Drives(ctx context.Context, id int) ([]Drive, error) {
	endpoint := vehicleEndpoint(id, "drives")
	var reply drivesResponse
	if err := c.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, malformed(endpoint, "data")
	}
	if reply.Data.Drives == nil {
		return nil, malformed(endpoint, "data.drives")
	}
	for i := range reply.Data.Drives {
		if member := reply.Data.Drives[i].missing(); member != "" {
			return nil, malformed(endpoint, fmt.Sprintf("data.drives[%d].%s", i, member))
		}
	}
	return reply.Data.Drives, nil
}

// BatteryHealth returns the battery degradation summary of vehicle id.
func (c *Client) BatteryHealth(ctx context.Context, id int) (*BatteryHealth, error) {
	endpoint := vehicleEndpoint(id, "battery-health")
	var reply batteryHealthResponse
	if err := c.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, malformed(endpoint, "data")
	}
	if reply.Data.BatteryHealth == nil {
		return nil, malformed(endpoint, "data.battery_health")
	}
	return reply.Data.BatteryHealth, nil
}

// IsUnexpected reports whether err is anything other than a non-200 HTTP status.
func IsUnexpected(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	return !errors.As(err, &httpErr) && !errors.Is(err, ErrNoVehicles)
}
