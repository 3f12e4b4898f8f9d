package crypto

import "github.com/ethereum/go-ethereum/common"

// Fingerprint returns a short form of an address for display/logging,
// e.g. 0xFc89…0cAF.
func Fingerprint(addr common.Address) string {
	h := addr.Hex()
	return h[:6] + "…" + h[len(h)-4:]
}
