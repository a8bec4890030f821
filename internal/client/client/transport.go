package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/bizcards/internal/common"
)

type credentialKey struct{}

// withCredential marks ctx so the transport attaches token to the request.
func withCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token)
}

func credentialFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(credentialKey{}).(string)
	return token, ok && token != ""
}

// transport decorates outbound requests: credential header (only when the
// request context carries one), request id, user agent, and pacing.
type transport struct {
	base      http.RoundTripper
	limiter   *rate.Limiter
	userAgent string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThrottled, err)
		}
	}

	out := req.Clone(ctx)
	out.Header.Del(common.AuthTokenHeaderName)
	if token, ok := credentialFrom(ctx); ok {
		out.Header.Set(common.AuthTokenHeaderName, token)
	}
	if out.Header.Get(common.RequestIDHeaderName) == "" {
		out.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	if t.userAgent != "" {
		out.Header.Set("User-Agent", t.userAgent)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}
