// Package chain provides a client for the Ember node REST API. The wallet
// core consumes it for nonces and account-history lookups; the CLI also uses
// it for balances and transaction submission.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/yolodolo42/emberwallet/internal/tx"
)

// Client talks to Ember nodes across configured networks. A reachable API
// base is probed once per network and cached for the client's lifetime.
type Client struct {
	// mu protects networks and baseURLs. Probing a base URL under the write
	// lock keeps two concurrent callers from racing duplicate probes; the
	// probe is not a hot path.
	mu       sync.Mutex
	networks map[string]*NetworkConfig
	baseURLs map[string]string
	http     *http.Client
}

// NewClient creates a client with the built-in networks.
func NewClient() *Client {
	return &Client{
		networks: DefaultNetworks(),
		baseURLs: make(map[string]string),
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// AddNetwork adds or overrides a network configuration.
func (c *Client) AddNetwork(name string, cfg *NetworkConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.networks[name] = cfg
	delete(c.baseURLs, name)
}

// GetNetworkConfig returns the configuration for a network.
func (c *Client) GetNetworkConfig(network string) (*NetworkConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.networks[network]
	if !ok {
		return nil, fmt.Errorf("unknown network: %s", network)
	}
	return cfg, nil
}

// ListNetworks returns the names of all configured networks.
func (c *Client) ListNetworks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.networks))
	for name := range c.networks {
		names = append(names, name)
	}
	return names
}

// GetBalance returns the EMB balance for an address.
func (c *Client) GetBalance(ctx context.Context, network, address string) (uint64, error) {
	var res struct {
		Balance uint64 `json:"balance"`
	}
	if err := c.get(ctx, network, "/address/"+url.PathEscape(address)+"/balance", &res); err != nil {
		return 0, err
	}
	return res.Balance, nil
}

// GetNonce returns the next transaction nonce for an address.
func (c *Client) GetNonce(ctx context.Context, network, address string) (uint64, error) {
	var res struct {
		Nonce uint64 `json:"nonce"`
	}
	if err := c.get(ctx, network, "/address/"+url.PathEscape(address)+"/nonce", &res); err != nil {
		return 0, err
	}
	return res.Nonce, nil
}

// AccountExists reports whether an address has on-chain history. A 404 from
// the node means the address has never been seen; that is a negative answer,
// not an error.
func (c *Client) AccountExists(ctx context.Context, network, address string) (bool, error) {
	base, err := c.baseURL(ctx, network)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/address/"+url.PathEscape(address), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("account lookup: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("account lookup: unexpected status %d", resp.StatusCode)
	}
}

// SubmitTransaction posts a signed transaction and returns the node-assigned
// transaction ID.
func (c *Client) SubmitTransaction(ctx context.Context, network string, signed *tx.Signed) (string, error) {
	base, err := c.baseURL(ctx, network)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(signed)
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/transaction", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("submit transaction: status %d: %s", resp.StatusCode, msg)
	}

	var res struct {
		TxID string `json:"txId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	return res.TxID, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, network, path string, out interface{}) error {
	base, err := c.baseURL(ctx, network)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// baseURL returns a reachable API base for the network, probing the
// configured URLs in order and caching the first that answers /status.
func (c *Client) baseURL(ctx context.Context, network string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, ok := c.networks[network]
	if !ok {
		return "", fmt.Errorf("unknown network: %s", network)
	}
	if base, ok := c.baseURLs[network]; ok {
		return base, nil
	}

	var lastErr error
	for _, base := range cfg.APIURLs {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := c.probe(probeCtx, base)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		c.baseURLs[network] = base
		return base, nil
	}
	return "", fmt.Errorf("no reachable node for %s: %w", network, lastErr)
}

func (c *Client) probe(ctx context.Context, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/status", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status probe on %s: %d", base, resp.StatusCode)
	}
	return nil
}
