package externalservices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"iga-backend/lib/metrics"
	"iga-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const userAgent = "IGA/1.0"

// Sender executes outbound JSON calls for one integration, optionally throttled.
type Sender struct {
	ServiceName string
	Client      *http.Client
	Limiter     *rate.Limiter
}

func NewSender(serviceName string, timeout time.Duration, limiter *rate.Limiter) Sender {
	return Sender{
		ServiceName: serviceName,
		Client:      &http.Client{Timeout: timeout},
		Limiter:     limiter,
	}
}

// SendRequest performs r and decodes a 2xx JSON body into resp. Transport and
// non-2xx failures come back as upstream errors, the raw error body is returned
// alongside for callers that inspect it.
func (s Sender) SendRequest(ctx context.Context, logger *log.Entry, r *http.Request, resp interface{}) (errBody []byte, err error) {
	_, errBody, err = s.SendRequestWithHeaders(ctx, logger, r, resp)
	return errBody, err
}

// SendRequestWithHeaders is SendRequest that also returns the response headers of a
// successful call.
func (s Sender) SendRequestWithHeaders(ctx context.Context, logger *log.Entry, r *http.Request, resp interface{}) (header http.Header, errBody []byte, err error) {
	auditData := ExtractAuditData(ctx)
	if auditData.RecID != "" {
		logger = logger.
			WithField("rec_type", auditData.RecType).
			WithField("rec_id", auditData.RecID)
	}
	if auditData.WithAudit && auditData.Request != "" {
		logger = logger.WithField("request_body", auditData.Request)
	}
	if s.Limiter != nil {
		if err = s.Limiter.Wait(ctx); err != nil {
			return nil, nil, models.UpstreamError("%s request cancelled: %v", s.ServiceName, err)
		}
	}
	r.Header.Set("User-Agent", userAgent)
	r.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(r)
	// body is read exactly once
	responseBody, logger := getResponseBody(logger, response)
	logger = addStatusCode(logger, response)
	if err != nil {
		metrics.ObserveUpstream(s.ServiceName, 0)
		logger.WithError(err).Errorf("%s request failed", s.ServiceName)
		return nil, nil, models.UpstreamError("%s request failed: %v", s.ServiceName, err)
	}
	metrics.ObserveUpstream(s.ServiceName, response.StatusCode)
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil && len(responseBody) != 0 {
			if err = json.Unmarshal(responseBody, resp); err != nil {
				logger.WithError(err).Errorf("%s response decode failed", s.ServiceName)
				return nil, nil, models.UpstreamError("%s returned malformed JSON", s.ServiceName)
			}
		}
		return response.Header, nil, nil
	}
	logger.Errorf("%s request rejected", s.ServiceName)
	return nil, responseBody, &StatusError{
		StatusCode: response.StatusCode,
		err:        models.UpstreamError("%s responded with status %d: %s", s.ServiceName, response.StatusCode, truncate(string(responseBody), 300)),
	}
}

func getResponseBody(logger *log.Entry, response *http.Response) ([]byte, *log.Entry) {
	if response != nil && response.Body != nil {
		defer response.Body.Close()
		responseBody, _ := io.ReadAll(response.Body)
		return responseBody, logger.WithField("response_body", truncate(string(responseBody), 2000))
	}
	return nil, logger
}

func addStatusCode(logger *log.Entry, response *http.Response) *log.Entry {
	if response != nil {
		return logger.WithField("response_status_code", response.StatusCode)
	}
	return logger
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return fmt.Sprintf("%s...", value[:limit])
}

// StatusError is an upstream failure that carries the HTTP status code.
type StatusError struct {
	StatusCode int
	err        error
}

func (e *StatusError) Error() string {
	return e.err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.err
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
