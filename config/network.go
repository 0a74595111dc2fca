// Package config holds the network configuration a client needs to talk to
// a Secret Network chain: its REST/LCD endpoint, its Tendermint RPC
// websocket endpoint, chain id, and coin denomination. Shaped for
// spf13/viper compatibility: `mapstructure` tags throughout, a `,remain`
// catch-all map keyed by network name.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Networks contains the configuration of every network a caller has
// registered, plus which one is the default.
type Networks struct {
	Default string `mapstructure:"default"`

	All map[string]*Network `mapstructure:",remain"`
}

// Validate performs config validation.
func (n *Networks) Validate() error {
	if _, exists := n.All[n.Default]; n.Default != "" && !exists {
		return fmt.Errorf("default network '%s' does not exist", n.Default)
	}

	for name, net := range n.All {
		if err := ValidateIdentifier(name); err != nil {
			return fmt.Errorf("malformed network name '%s': %w", name, err)
		}
		if err := net.Validate(); err != nil {
			return fmt.Errorf("network '%s': %w", name, err)
		}
	}

	return nil
}

// Add registers a new network, making it the default if none is set yet.
func (n *Networks) Add(name string, net *Network) error {
	if _, exists := n.All[name]; exists {
		return fmt.Errorf("network '%s' already exists", name)
	}
	if err := ValidateIdentifier(name); err != nil {
		return fmt.Errorf("malformed network name '%s': %w", name, err)
	}
	if err := net.Validate(); err != nil {
		return err
	}

	if n.All == nil {
		n.All = make(map[string]*Network)
	}
	n.All[name] = net

	if n.Default == "" {
		n.Default = name
	}
	return nil
}

// Remove removes an existing network.
func (n *Networks) Remove(name string) error {
	if _, exists := n.All[name]; !exists {
		return fmt.Errorf("network '%s' does not exist", name)
	}
	delete(n.All, name)
	if n.Default == name {
		n.Default = ""
	}
	return nil
}

// SetDefault marks an already-registered network as the default.
func (n *Networks) SetDefault(name string) error {
	if _, exists := n.All[name]; !exists {
		return fmt.Errorf("network '%s' does not exist", name)
	}
	n.Default = name
	return nil
}

// Network is the connection and denomination configuration for a single Secret
// Network chain (mainnet, pulsar testnet, a local secretdev instance, ...).
type Network struct {
	Description string `mapstructure:"description"`

	// ChainID is the Tendermint chain-id transactions must be signed
	// against, e.g. "secret-4".
	ChainID string `mapstructure:"chain_id"`

	// LCD is the base URL of the chain's REST/LCD endpoint.
	LCD string `mapstructure:"lcd"`

	// RPC is the base URL of the chain's Tendermint RPC endpoint, used
	// for websocket tx-event subscriptions (transport/events.go).
	RPC string `mapstructure:"rpc"`

	Denomination DenominationInfo `mapstructure:"denomination"`
}

// Validate performs config validation.
func (n *Network) Validate() error {
	if n.ChainID == "" {
		return fmt.Errorf("chain id must not be empty")
	}
	if _, err := url.Parse(n.LCD); err != nil {
		return fmt.Errorf("malformed LCD endpoint: %w", err)
	}
	if _, err := url.Parse(n.RPC); err != nil {
		return fmt.Errorf("malformed RPC endpoint: %w", err)
	}
	return n.Denomination.Validate()
}

// IsLocalRPC reports whether the RPC endpoint points at loopback, the way a
// secretdev-in-docker developer setup does.
func (n *Network) IsLocalRPC() bool {
	return strings.Contains(n.RPC, "127.0.0.1") || strings.Contains(n.RPC, "localhost")
}
