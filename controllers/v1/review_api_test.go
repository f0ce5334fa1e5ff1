package apiv1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"iga-backend/config"
	reviewhandler "iga-backend/lib/review"
	authutils "iga-backend/lib/utils/auth-utils"
	"iga-backend/middleware"
	"iga-backend/models"
	apimodels "iga-backend/models/api"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeReviews struct {
	decision   reviewapimodels.DecisionData
	delegation reviewapimodels.DelegationRequest
	requester  string
	filter     reviewapimodels.ReviewerFilter
	err        error
}

func (f *fakeReviews) SubmitDecision(ctx context.Context, data reviewapimodels.DecisionData) (reviewapimodels.DecisionResult, error) {
	f.decision = data
	if f.err != nil {
		return reviewapimodels.DecisionResult{}, f.err
	}
	outcome := models.RevocationFailed
	return reviewapimodels.DecisionResult{
		ReviewItemID: data.ReviewItemID,
		Decision:     data.Decision,
		Revocation:   &outcome,
		Warning:      "okta revocation failed",
	}, nil
}

func (f *fakeReviews) Delegate(ctx context.Context, actorEmail string, data reviewapimodels.DelegationRequest) (reviewapimodels.DelegationResult, error) {
	f.requester = actorEmail
	f.delegation = data
	return reviewapimodels.DelegationResult{Reassigned: 2}, nil
}

func (f *fakeReviews) Pending(filter reviewapimodels.ReviewerFilter) ([]reviewapimodels.ReviewItemView, int64, error) {
	f.filter = filter
	return []reviewapimodels.ReviewItemView{}, 0, nil
}

func (f *fakeReviews) History(filter reviewapimodels.ReviewerFilter) ([]reviewapimodels.ReviewItemView, int64, error) {
	f.filter = filter
	return []reviewapimodels.ReviewItemView{}, 0, nil
}

func newReviewApp(t *testing.T) (*fiber.App, *fakeReviews) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	fake := &fakeReviews{}
	prev := reviewhandler.Instance
	reviewhandler.Instance = fake
	t.Cleanup(func() {
		reviewhandler.Instance = prev
		config.Conf = nil
	})
	app := fiber.New()
	app.Use(middleware.AuthorizationRequired())
	InitReviewApiRouters(app)
	return app, fake
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, role models.UserRole, email string) (int, apimodels.Response) {
	token, err := authutils.GetToken("test-secret", email, role, time.Hour)
	require.Nil(t, err)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.Nil(t, err)
	defer resp.Body.Close()
	result := apimodels.Response{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestReviewDecisionApi(t *testing.T) {
	app, fake := newReviewApp(t)

	status, resp := doRequest(t, app, http.MethodPost, "/reviews/item-1/decision",
		`{"decision":"Revoked","evidence_notes":"left the team"}`, models.ReviewerRole, "Bob@Co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "success", resp.Status)
	require.Equal(t, "okta revocation failed", resp.Message)
	require.Equal(t, reviewapimodels.DecisionData{
		ReviewItemID:  "item-1",
		Decision:      models.DecisionRevoked,
		ActorEmail:    "bob@co.com",
		ActorRole:     models.ReviewerRole,
		EvidenceNotes: "left the team",
	}, fake.decision)

	fake.err = models.ForbiddenError("review item item-1 is assigned to another reviewer")
	status, resp = doRequest(t, app, http.MethodPost, "/reviews/item-1/decision",
		`{"decision":"Revoked"}`, models.ReviewerRole, "mallory@co.com")
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "fail", resp.Status)
	require.Equal(t, "mallory@co.com", fake.decision.ActorEmail)

	fake.err = nil
	status, _ = doRequest(t, app, http.MethodPost, "/reviews/item-1/decision",
		`{"decision":"Approved"}`, models.AdminRole, "root@co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, models.AdminRole, fake.decision.ActorRole)

	fake.err = models.ConflictError("review item item-1 is already decided")
	status, resp = doRequest(t, app, http.MethodPost, "/reviews/item-1/decision",
		`{"decision":"Approved"}`, models.ReviewerRole, "bob@co.com")
	require.Equal(t, fiber.StatusConflict, status)
	require.Equal(t, "fail", resp.Status)
}

func TestReviewListApi(t *testing.T) {
	app, fake := newReviewApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/reviews/pending?page=2", "", models.ReviewerRole, "bob@co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "bob@co.com", fake.filter.Reviewer)
	require.Equal(t, 2, fake.filter.Page)

	status, _ = doRequest(t, app, http.MethodGet, "/reviews/history?reviewer=eve@co.com", "", models.ReviewerRole, "bob@co.com")
	require.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodGet, "/reviews/history?reviewer=eve@co.com", "", models.AdminRole, "root@co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "eve@co.com", fake.filter.Reviewer)
}

func TestDelegateApi(t *testing.T) {
	app, fake := newReviewApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/reviews/delegate", `{"to_email":"eve@co.com"}`, models.ReviewerRole, "bob@co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "bob@co.com", fake.delegation.FromEmail)
	require.Equal(t, "bob@co.com", fake.requester)

	status, _ = doRequest(t, app, http.MethodPost, "/reviews/delegate", `{"from_email":"eve@co.com","to_email":"bob@co.com"}`, models.ReviewerRole, "bob@co.com")
	require.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodPost, "/reviews/delegate", `{"from_email":"eve@co.com","to_email":"bob@co.com"}`, models.AdminRole, "root@co.com")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "root@co.com", fake.requester)
}
