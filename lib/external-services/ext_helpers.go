package externalservices

import (
	"context"
	"strings"
)

type ctxKey string

const (
	recTypeKey   ctxKey = "recType"
	recIDKey     ctxKey = "recID"
	withAuditKey ctxKey = "withAudit"
	uriKey       ctxKey = "uri"
	requestKey   ctxKey = "request"
)

// AuditData describes which local record an outbound call was made for.
type AuditData struct {
	RecType   string
	RecID     string
	Request   string
	Uri       string
	WithAudit bool
}

func GetAuditContext(ctx context.Context, uri string, request []byte) context.Context {
	rCtx := context.WithValue(ctx, withAuditKey, true)
	rCtx = context.WithValue(rCtx, uriKey, uri)
	if len(request) != 0 {
		rCtx = context.WithValue(rCtx, requestKey, string(request))
	}
	return rCtx
}

func GetContextWithRecID(ctx context.Context, recType, recID string) context.Context {
	ctx = context.WithValue(ctx, recTypeKey, recType)
	return context.WithValue(ctx, recIDKey, recID)
}

func ExtractAuditData(ctx context.Context) AuditData {
	data := AuditData{}
	if ctx == nil {
		return data
	}
	data.RecType, _ = ctx.Value(recTypeKey).(string)
	data.RecID, _ = ctx.Value(recIDKey).(string)
	data.Request, _ = ctx.Value(requestKey).(string)
	data.Uri, _ = ctx.Value(uriKey).(string)
	data.WithAudit, _ = ctx.Value(withAuditKey).(bool)
	return data
}

// NormalizeDomain strips the scheme and trailing slashes from a configured host.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	lower := strings.ToLower(domain)
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, prefix) {
			domain = domain[len(prefix):]
			break
		}
	}
	return strings.TrimRight(domain, "/")
}
