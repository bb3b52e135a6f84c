// Package httpclient provides an outbound HTTP client with SSRF guards for
// talking to annotation providers.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/motifminer/motifminer/errors"
)

// Options controls the guards applied to outbound requests.
type Options struct {
	// AllowedSchemes defaults to http and https.
	AllowedSchemes []string
	// MaxRedirects defaults to 10.
	MaxRedirects int
	// AllowPrivateHosts permits requests resolving to private or loopback
	// addresses. Off by default.
	AllowPrivateHosts bool
}

// Guarded wraps http.Client with scheme, redirect and private-address
// checks.
type Guarded struct {
	*http.Client
	options Options
}

// New creates a guarded HTTP client.
func New(timeout time.Duration, options Options) *Guarded {
	if len(options.AllowedSchemes) == 0 {
		options.AllowedSchemes = []string{"http", "https"}
	}
	if options.MaxRedirects == 0 {
		options.MaxRedirects = 10
	}

	client := &Guarded{
		Client:  &http.Client{Timeout: timeout},
		options: options,
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.options.MaxRedirects {
			return errors.Newf("stopped after %d redirects", client.options.MaxRedirects)
		}
		if err := client.ValidateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	if !options.AllowPrivateHosts {
		dialer := &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}
		client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, _, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, errors.Wrap(err, "invalid address")
				}
				ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
				if err != nil {
					return nil, errors.Wrapf(err, "failed to resolve host %q", host)
				}
				for _, ip := range ips {
					if isPrivateIP(ip) {
						return nil, errors.Newf("private address blocked: %s", ip)
					}
				}
				return dialer.DialContext(ctx, network, addr)
			},
			MaxIdleConns:    100,
			IdleConnTimeout: 90 * time.Second,
		}
	}
	return client
}

// ValidateURL checks a URL against the client's guards before a request is
// made.
func (c *Guarded) ValidateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, allowedScheme := range c.options.AllowedSchemes {
		if scheme == allowedScheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.options.AllowedSchemes)
	}
	// http://evil.com@localhost/ style URL confusion
	if u.User != nil {
		return errors.New("URL must not carry userinfo")
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}
