package hover

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// DefaultUserAgent is sent when no WithUserAgent option is given.
const DefaultUserAgent = "hover-go/1.0"

// transport sets the User-Agent header on outgoing requests and logs each
// exchange at debug level.
type transport struct {
	base      http.RoundTripper
	userAgent string
	logger    logrus.FieldLogger
}

func newTransport(base http.RoundTripper, userAgent string, logger logrus.FieldLogger) *transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &transport{base: base, userAgent: userAgent, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	fields := logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}
	t.logger.WithFields(fields).Debug("HTTP request")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.WithFields(fields).WithError(err).Debug("HTTP request failed")
		return nil, err
	}

	fields["status"] = resp.StatusCode
	t.logger.WithFields(fields).Debug("HTTP response")

	return resp, nil
}
