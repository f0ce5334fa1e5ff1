package fiberlog

import (
	"math/rand"
	"sync"
	"time"

	authutils "iga-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

const (
	TagPid         = "pid"
	TagLatency     = "latency"
	TagStatus      = "status"
	TagMethod      = "method"
	TagPath        = "path"
	TagRoute       = "route"
	TagIP          = "ip"
	TagUA          = "user_agent"
	TagQueryParams = "query"
	TagBody        = "body"
	TagResBody     = "res_body"
	TagActor       = "actor_email"
	RequestID      = "request_id"
)

const RequestIDHeader = "X-Request-ID"

// data is collected per request.
type data struct {
	pid       int
	start     time.Time
	end       time.Time
	requestID string
}

// FuncTag extracts one log field from the request.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// GetRequestID returns the id assigned to the current request.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestID).(string); ok {
		return id
	}
	return ""
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagRoute: func(c *fiber.Ctx, d *data) interface{} {
			if r := c.Route(); r != nil {
				return r.Path
			}
			return ""
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUA: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagQueryParams: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Response().Body())
		},
		TagActor: func(c *fiber.Ctx, d *data) interface{} {
			if email, ok := authutils.GetClaims(c)["email"].(string); ok {
				return email
			}
			return ""
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return d.requestID
		},
	}
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}
