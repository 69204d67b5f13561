package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/rmitchellscott/orangesnap/internal/config"
)

// ErrBlockedURL is returned (wrapped) when a remote image URL is refused by policy.
var ErrBlockedURL = errors.New("url blocked by policy")

var privateIPRanges = []*net.IPNet{
	mustParseCIDR("10.0.0.0/8"),
	mustParseCIDR("172.16.0.0/12"),
	mustParseCIDR("192.168.0.0/16"),
	mustParseCIDR("169.254.0.0/16"),
	mustParseCIDR("127.0.0.0/8"),
	mustParseCIDR("100.64.0.0/10"),
	mustParseCIDR("::1/128"),
	mustParseCIDR("fe80::/10"),
	mustParseCIDR("fc00::/7"),
}

func mustParseCIDR(cidr string) *net.IPNet {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse CIDR %s: %v", cidr, err))
	}
	return ipNet
}

// URLPolicy decides which remote hosts wallpapers and screenshots may be
// fetched from.
type URLPolicy struct {
	BlockPrivateIPs bool
	BlockedDomains  []string
	// Resolver is used for private address checks; nil means net.DefaultResolver.
	Resolver *net.Resolver
}

// PolicyFromEnv reads BLOCKED_DOMAINS and BLOCK_PRIVATE_IPS.
func PolicyFromEnv() URLPolicy {
	return URLPolicy{
		BlockPrivateIPs: config.GetBool("BLOCK_PRIVATE_IPS", false),
		BlockedDomains:  config.GetList("BLOCKED_DOMAINS"),
	}
}

// Validate accepts only http(s) URLs with a host that is neither blocked by
// name nor, when enabled, resolving to a private address.
func (p URLPolicy) Validate(ctx context.Context, urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https are allowed)", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("URL missing hostname")
	}

	for _, blocked := range p.BlockedDomains {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return fmt.Errorf("%w: domain %s is blocked", ErrBlockedURL, host)
		}
	}

	if !p.BlockPrivateIPs {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: private address %s", ErrBlockedURL, ip)
		}
		return nil
	}

	resolver := p.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupIPAddr(ctx, host)
	if err != nil {
		// Unresolvable hosts fail later at fetch time.
		return nil
	}
	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return fmt.Errorf("%w: %s resolves to private address %s", ErrBlockedURL, host, addr.IP)
		}
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, r := range privateIPRanges {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}
