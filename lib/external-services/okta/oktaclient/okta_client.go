package oktaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	externalservices "iga-backend/lib/external-services"
	"iga-backend/models"
	oktaapimodels "iga-backend/models/api/okta"
	dbmodels "iga-backend/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Provider interface {
	// https://developer.okta.com/docs/api/openapi/okta-management/management/tag/ApplicationGroups/
	ListAppGroups(ctx context.Context, appID string) ([]oktaapimodels.Group, error)

	// https://developer.okta.com/docs/api/openapi/okta-management/management/tag/Group/#tag/Group/operation/listGroupUsers
	ListGroupUsers(ctx context.Context, groupID string) ([]oktaapimodels.User, error)

	// https://developer.okta.com/docs/api/openapi/okta-management/management/tag/Group/#tag/Group/operation/unassignUserFromGroup
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) error

	// CheckCredentials lists a single user to prove the token works.
	CheckCredentials(ctx context.Context) error
}

// Factory builds a client from the current integration settings.
type Factory func(settings dbmodels.SystemSettings) Provider

const (
	serviceName   string = "Okta"
	pageLimit     int    = 200
	appGroupsPath string = "%s/apps/%s/groups?limit=%d"
	groupUsers    string = "%s/groups/%s/users?limit=%d"
	groupUserPath string = "%s/groups/%s/users/%s"
	usersPath     string = "%s/users?limit=1"
	// guards against a Link header that never ends
	maxPages int = 500
)

var (
	limiter        *rate.Limiter
	requestTimeout = 30 * time.Second
)

// Configure sets the limiter shared by every client and the per-request timeout.
// A non-positive rps disables throttling.
func Configure(rps float64, burst int, timeout time.Duration) {
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	} else {
		limiter = nil
	}
	if timeout > 0 {
		requestTimeout = timeout
	}
}

func BaseURL(domain string) string {
	return fmt.Sprintf("https://%s/api/v1", externalservices.NormalizeDomain(domain))
}

// DefaultFactory talks to the tenant named in settings.
func DefaultFactory(settings dbmodels.SystemSettings) Provider {
	return NewClient(BaseURL(settings.OktaDomain), settings.OktaApiToken)
}

func NewClient(baseURL, apiToken string) Provider {
	return &impl{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: strings.TrimSpace(apiToken),
		sender:   externalservices.NewSender(serviceName, requestTimeout, limiter),
	}
}

type impl struct {
	baseURL  string
	apiToken string
	sender   externalservices.Sender
}

func (i impl) ListAppGroups(ctx context.Context, appID string) ([]oktaapimodels.Group, error) {
	uri := fmt.Sprintf(appGroupsPath, i.baseURL, url.PathEscape(appID), pageLimit)
	result := []oktaapimodels.Group{}
	err := i.getAllPages(ctx, uri, func() any {
		return &[]oktaapimodels.Group{}
	}, func(page any) {
		result = append(result, *page.(*[]oktaapimodels.Group)...)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i impl) ListGroupUsers(ctx context.Context, groupID string) ([]oktaapimodels.User, error) {
	uri := fmt.Sprintf(groupUsers, i.baseURL, url.PathEscape(groupID), pageLimit)
	result := []oktaapimodels.User{}
	err := i.getAllPages(ctx, uri, func() any {
		return &[]oktaapimodels.User{}
	}, func(page any) {
		result = append(result, *page.(*[]oktaapimodels.User)...)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i impl) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	uri := fmt.Sprintf(groupUserPath, i.baseURL, url.PathEscape(groupID), url.PathEscape(userID))
	logger := log.
		WithField("external_request", uri).
		WithField("method", http.MethodDelete)
	r, err := http.NewRequestWithContext(ctx, http.MethodDelete, uri, nil)
	if err != nil {
		return models.UpstreamError("invalid Okta request: %v", err)
	}
	i.authorize(r)
	_, err = i.sender.SendRequest(ctx, logger, r, nil)
	return err
}

func (i impl) CheckCredentials(ctx context.Context) error {
	uri := fmt.Sprintf(usersPath, i.baseURL)
	logger := log.
		WithField("external_request", uri)
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return models.UpstreamError("invalid Okta request: %v", err)
	}
	i.authorize(r)
	resp := []oktaapimodels.User{}
	_, err = i.sender.SendRequest(ctx, logger, r, &resp)
	return err
}

func (i impl) authorize(r *http.Request) {
	r.Header.Set("Authorization", fmt.Sprintf("SSWS %s", i.apiToken))
	r.Header.Set("Content-Type", "application/json")
}

// getAllPages follows the rel="next" Link headers Okta returns for collections.
func (i impl) getAllPages(ctx context.Context, uri string, newPage func() any, collect func(page any)) error {
	next := uri
	for page := 0; next != ""; page++ {
		if page == maxPages {
			return models.UpstreamError("Okta pagination did not terminate after %d pages", maxPages)
		}
		logger := log.
			WithField("external_request", next)
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return models.UpstreamError("invalid Okta request: %v", err)
		}
		i.authorize(r)
		resp := newPage()
		header, _, err := i.sender.SendRequestWithHeaders(ctx, logger, r, resp)
		if err != nil {
			return err
		}
		collect(resp)
		next = nextLink(header)
	}
	return nil
}

func nextLink(header http.Header) string {
	for _, value := range header.Values("Link") {
		for _, part := range strings.Split(value, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 {
				continue
			}
			isNext := false
			for _, param := range segments[1:] {
				if strings.ReplaceAll(strings.TrimSpace(param), " ", "") == `rel="next"` {
					isNext = true
				}
			}
			if !isNext {
				continue
			}
			link := strings.TrimSpace(segments[0])
			link = strings.TrimPrefix(link, "<")
			link = strings.TrimSuffix(link, ">")
			return link
		}
	}
	return ""
}
