package bamboohrclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	externalservices "iga-backend/lib/external-services"
	"iga-backend/models"
	dbmodels "iga-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// https://documentation.bamboohr.com/reference/request-custom-report-1
	FetchReport(ctx context.Context, source dbmodels.BambooHRSource) ([]map[string]any, error)

	// https://documentation.bamboohr.com/reference/metadata-get-a-list-of-fields
	CheckCredentials(ctx context.Context, subdomain, apiKey string) error
}

// BaseURLFunc returns the API root for a company subdomain.
type BaseURLFunc func(subdomain string) string

const (
	serviceName string = "BambooHR"
	reportPath  string = "%s/reports/%s?format=json&fd=yes&onlyCurrent=1"
	metaPath    string = "%s/meta/fields"
)

func DefaultBaseURL(subdomain string) string {
	subdomain = url.PathEscape(subdomain)
	return fmt.Sprintf("https://%s.bamboohr.com/api/gateway.php/%s/v1", subdomain, subdomain)
}

func NewClient(baseURL BaseURLFunc, timeout time.Duration) Provider {
	if baseURL == nil {
		baseURL = DefaultBaseURL
	}
	return &impl{
		baseURL: baseURL,
		sender:  externalservices.NewSender(serviceName, timeout, nil),
	}
}

type impl struct {
	baseURL BaseURLFunc
	sender  externalservices.Sender
}

type reportResponse struct {
	Employees []map[string]any `json:"employees"`
}

func (i impl) FetchReport(ctx context.Context, source dbmodels.BambooHRSource) ([]map[string]any, error) {
	uri := fmt.Sprintf(reportPath, i.baseURL(source.Subdomain), url.PathEscape(source.ReportID))
	logger := log.
		WithField("external_request", uri).
		WithField("worker_type", source.WorkerType)
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, models.UpstreamError("invalid BambooHR request: %v", err)
	}
	authorize(r, source.ApiKey)
	resp := reportResponse{}
	if _, err = i.sender.SendRequest(ctx, logger, r, &resp); err != nil {
		return nil, err
	}
	if resp.Employees == nil {
		logger.Error("BambooHR report has no employees array")
		return nil, models.UpstreamError("unexpected BambooHR payload for %s", source.WorkerType)
	}
	return resp.Employees, nil
}

func (i impl) CheckCredentials(ctx context.Context, subdomain, apiKey string) error {
	uri := fmt.Sprintf(metaPath, i.baseURL(subdomain))
	logger := log.
		WithField("external_request", uri)
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return models.UpstreamError("invalid BambooHR request: %v", err)
	}
	authorize(r, apiKey)
	_, err = i.sender.SendRequest(ctx, logger, r, nil)
	return err
}

func authorize(r *http.Request, apiKey string) {
	credentials := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:x", apiKey)))
	r.Header.Set("Authorization", fmt.Sprintf("Basic %s", credentials))
}
