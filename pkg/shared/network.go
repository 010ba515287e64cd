package shared

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	NetworkMainnet  = "mainnet"
	NetworkTestnet  = "testnet"
	NetworkDevnet   = "devnet"
	NetworkLocalnet = "localnet"
)

var fullnodeURLs = map[string]string{
	NetworkMainnet:  "https://fullnode.mainnet.sui.io:443",
	NetworkTestnet:  "https://fullnode.testnet.sui.io:443",
	NetworkDevnet:   "https://fullnode.devnet.sui.io:443",
	NetworkLocalnet: "http://127.0.0.1:9000",
}

// NormalizeNetwork lower-cases a network name; empty means testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	if _, ok := fullnodeURLs[normalized]; ok {
		return normalized, nil
	}
	return "", fmt.Errorf("unsupported network %q", network)
}

// ResolveNodeURL accepts either a network name or an http(s) URL and returns
// the full node endpoint together with the network label used for logging.
func ResolveNodeURL(network string) (string, string, error) {
	trimmed := strings.TrimSpace(network)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", "", fmt.Errorf("invalid node URL: %w", err)
		}
		if strings.TrimSpace(parsed.Host) == "" {
			return "", "", fmt.Errorf("invalid node URL: host is required")
		}
		return strings.TrimRight(parsed.String(), "/"), networkLabel(parsed.Host), nil
	}

	normalized, err := NormalizeNetwork(trimmed)
	if err != nil {
		return "", "", err
	}
	return fullnodeURLs[normalized], normalized, nil
}

func networkLabel(host string) string {
	for name, endpoint := range fullnodeURLs {
		if strings.Contains(endpoint, host) {
			return name
		}
	}
	return "custom"
}
