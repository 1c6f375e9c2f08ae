package chain

// NetworkConfig holds the endpoints for one Ember network.
type NetworkConfig struct {
	Name        string   `yaml:"name"`
	APIURLs     []string `yaml:"api_urls"`
	ExplorerURL string   `yaml:"explorer_url"`
	Symbol      string   `yaml:"symbol"`
	IsTestnet   bool     `yaml:"is_testnet"`
}

// DefaultNetworks returns the built-in network configurations.
func DefaultNetworks() map[string]*NetworkConfig {
	return map[string]*NetworkConfig{
		"mainnet": {
			Name:        "Ember Mainnet",
			APIURLs:     []string{"https://api.emberchain.io", "https://api-backup.emberchain.io"},
			ExplorerURL: "https://scan.emberchain.io",
			Symbol:      "EMB",
			IsTestnet:   false,
		},
		"testnet": {
			Name:        "Ember Testnet",
			APIURLs:     []string{"https://api.testnet.emberchain.io"},
			ExplorerURL: "https://scan.testnet.emberchain.io",
			Symbol:      "tEMB",
			IsTestnet:   true,
		},
		"localnet": {
			Name:        "Local Node",
			APIURLs:     []string{"http://127.0.0.1:8080"},
			ExplorerURL: "",
			Symbol:      "EMB",
			IsTestnet:   true,
		},
	}
}
