package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultNetworks(t *testing.T) {
	networks := DefaultNetworks()

	t.Run("ships the expected networks", func(t *testing.T) {
		for _, name := range []string{"mainnet", "testnet", "localnet"} {
			cfg, ok := networks[name]
			require.True(t, ok, "missing network %s", name)
			assert.NotEmpty(t, cfg.Name)
			assert.NotEmpty(t, cfg.APIURLs)
			assert.NotEmpty(t, cfg.Symbol)
		}
	})

	t.Run("only mainnet is non-test", func(t *testing.T) {
		assert.False(t, networks["mainnet"].IsTestnet)
		assert.True(t, networks["testnet"].IsTestnet)
		assert.True(t, networks["localnet"].IsTestnet)
	})

	t.Run("returns a fresh map each call", func(t *testing.T) {
		other := DefaultNetworks()
		other["mainnet"].Symbol = "MUTATED"
		assert.Equal(t, "EMB", DefaultNetworks()["mainnet"].Symbol)
	})
}

func TestNetworkConfigYAML(t *testing.T) {
	in := NetworkConfig{
		Name:        "Staging",
		APIURLs:     []string{"https://api.staging.example.com"},
		ExplorerURL: "https://scan.staging.example.com",
		Symbol:      "sEMB",
		IsTestnet:   true,
	}

	raw, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "api_urls:")

	var out NetworkConfig
	require.NoError(t, yaml.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestClientNetworkRegistry(t *testing.T) {
	client := NewClient()
	defer client.Close()

	t.Run("lists the defaults", func(t *testing.T) {
		names := client.ListNetworks()
		assert.ElementsMatch(t, []string{"mainnet", "testnet", "localnet"}, names)
	})

	t.Run("lookup of a known network", func(t *testing.T) {
		cfg, err := client.GetNetworkConfig("testnet")
		require.NoError(t, err)
		assert.Equal(t, "tEMB", cfg.Symbol)
	})

	t.Run("lookup of an unknown network", func(t *testing.T) {
		_, err := client.GetNetworkConfig("devnet")
		require.Error(t, err)
	})

	t.Run("added networks appear and override", func(t *testing.T) {
		client.AddNetwork("devnet", &NetworkConfig{Name: "Dev", APIURLs: []string{"http://127.0.0.1:9090"}})
		cfg, err := client.GetNetworkConfig("devnet")
		require.NoError(t, err)
		assert.Equal(t, "Dev", cfg.Name)
		assert.Contains(t, client.ListNetworks(), "devnet")
	})
}
