// Package masterkeys exposes the chain's SGX remote-attestation
// certificate. Its schema is deliberately left unvalidated here — this is
// a thin, opaque passthrough consumers can feed to their own
// attestation-verification tooling.
package masterkeys

import (
	"context"
	"fmt"

	"github.com/scrt-labs/secret-sdk-go/transport"
)

const path = "/register/master-cert"

// GetMasterCert fetches the raw JSON response of the chain's master
// certificate endpoint, verbatim.
func GetMasterCert(ctx context.Context, client transport.Client) ([]byte, error) {
	raw, err := client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("masterkeys: fetch failed: %w", err)
	}
	return raw, nil
}
