// Package upstransit is the HTTP adapter for the UPS Time in Transit API.
// It maintains an OAuth client-credentials session and answers the transit
// estimator port with per-service delivery commitments.
package upstransit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"rateshop/internal/core/ports"
	"rateshop/internal/pkg/errs"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://onlinetools.ups.com"

const deliveryDateLayout = "2006-01-02"

// Client implements the transit estimator port on the UPS API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a UPS transit client. An empty baseURL selects the
// production API.
func NewClient(baseURL, clientID, clientSecret string, logger *slog.Logger) (*Client, error) {
	if clientID == "" {
		return nil, errs.NewValueIsRequiredError("clientID")
	}
	if clientSecret == "" {
		return nil, errs.NewValueIsRequiredError("clientSecret")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// token returns a valid bearer token, requesting a new one when the cached
// token is missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/security/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(url.QueryEscape(c.clientID), url.QueryEscape(c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ups oauth responded %d: %s", resp.StatusCode, snippet)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("ups oauth returned an empty access token")
	}

	ttl := 3600
	if seconds, convErr := strconv.Atoi(token.ExpiresIn); convErr == nil && seconds > 0 {
		ttl = seconds
	}
	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(ttl-60) * time.Second)

	return c.accessToken, nil
}

type transitRequest struct {
	OriginCountryCode        string `json:"originCountryCode"`
	OriginStateProvince      string `json:"originStateProvince"`
	OriginCityName           string `json:"originCityName"`
	OriginPostalCode         string `json:"originPostalCode"`
	DestinationCountryCode   string `json:"destinationCountryCode"`
	DestinationStateProvince string `json:"destinationStateProvince"`
	DestinationCityName      string `json:"destinationCityName"`
	DestinationPostalCode    string `json:"destinationPostalCode"`
	Weight                   string `json:"weight"`
	WeightUnitOfMeasure      string `json:"weightUnitOfMeasure"`
	BillType                 string `json:"billType"`
	ShipDate                 string `json:"shipDate"`
	ResidentialIndicator     string `json:"residentialIndicator"`
	AvvFlag                  bool   `json:"avvFlag"`
	NumberOfPackages         string `json:"numberOfPackages"`
	ReturnUnfilteredServices bool   `json:"returnUnfilterdServices"`
}

type transitResponse struct {
	EmsResponse struct {
		Services []struct {
			ServiceLevel            string `json:"serviceLevel"`
			ServiceLevelDescription string `json:"serviceLevelDescription"`
			BusinessTransitDays     int    `json:"businessTransitDays"`
			DeliveryDate            string `json:"deliveryDate"`
			DeliveryDayOfWeek       string `json:"deliveryDayOfWeek"`
		} `json:"services"`
	} `json:"emsResponse"`
}

// EstimateTransit returns UPS's delivery commitments for the lane.
func (c *Client) EstimateTransit(ctx context.Context, query ports.TransitQuery) ([]ports.TransitEstimate, error) {
	bearer, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("ups oauth: %w", err)
	}

	residentialIndicator := "02"
	if query.Residential {
		residentialIndicator = "01"
	}

	request := transitRequest{
		OriginCountryCode:        "US",
		OriginStateProvince:      query.FromState,
		OriginCityName:           query.FromCity,
		OriginPostalCode:         query.FromPostal,
		DestinationCountryCode:   query.ToCountry,
		DestinationStateProvince: query.ToState,
		DestinationCityName:      query.ToCity,
		DestinationPostalCode:    strings.ReplaceAll(query.ToPostal, "-", ""),
		Weight:                   strconv.FormatFloat(query.Weight.Kilograms(), 'f', 2, 64),
		WeightUnitOfMeasure:      "KGS",
		BillType:                 "03",
		ShipDate:                 query.ShipDate.Format(deliveryDateLayout),
		ResidentialIndicator:     residentialIndicator,
		AvvFlag:                  true,
		NumberOfPackages:         "1",
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/shipments/v1/transittimes", strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("transactionSrc", "rateshop")
	// the API wants a 32 character request identifier
	req.Header.Set("transId", strings.ReplaceAll(uuid.NewString(), "-", ""))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ups transittimes responded %d: %s", resp.StatusCode, snippet)
	}

	var response transitResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	estimates := make([]ports.TransitEstimate, 0, len(response.EmsResponse.Services))
	for _, service := range response.EmsResponse.Services {
		deliveryDate, parseErr := time.Parse(deliveryDateLayout, service.DeliveryDate)
		if parseErr != nil {
			c.logger.Warn("skipping service with unparseable delivery date",
				"service", service.ServiceLevelDescription, "date", service.DeliveryDate)
			continue
		}
		estimates = append(estimates, ports.TransitEstimate{
			Service:      service.ServiceLevelDescription,
			DeliveryDate: deliveryDate,
			BusinessDays: service.BusinessTransitDays,
		})
	}

	return estimates, nil
}
