package shared

import "testing"

func TestNormalizeNetworkCaseInsensitive(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"MAINNET", NetworkMainnet},
		{"Testnet", NetworkTestnet},
		{"  devnet  ", NetworkDevnet},
		{"localnet", NetworkLocalnet},
		{"", NetworkTestnet},
		{"   ", NetworkTestnet},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	if _, err := NormalizeNetwork("badnet"); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestResolveNodeURLFromName(t *testing.T) {
	endpoint, label, err := ResolveNodeURL("testnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint != "https://fullnode.testnet.sui.io:443" {
		t.Fatalf("unexpected endpoint: %s", endpoint)
	}
	if label != NetworkTestnet {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestResolveNodeURLFromURL(t *testing.T) {
	endpoint, label, err := ResolveNodeURL("https://fullnode.mainnet.sui.io:443/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint != "https://fullnode.mainnet.sui.io:443" {
		t.Fatalf("unexpected endpoint: %s", endpoint)
	}
	if label != NetworkMainnet {
		t.Fatalf("unexpected label: %s", label)
	}

	_, label, err = ResolveNodeURL("http://10.0.0.5:9000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "custom" {
		t.Fatalf("expected custom label, got %s", label)
	}
}

func TestResolveNodeURLRejectsMissingHost(t *testing.T) {
	if _, _, err := ResolveNodeURL("https://"); err == nil {
		t.Fatal("expected error for URL without host")
	}
}
