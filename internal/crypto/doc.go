// Package crypto exposes the minimal primitives used by chainvote.
//
// Contents
//
//   - secp256k1 key generation and parsing (GenerateKey, KeyFromHex, ToECDSA)
//   - The signed vote payload and personal_sign style signatures
//     (VotePayload, PersonalSign, RecoverSigner)
//   - The keccak256 signature digest submitted with each vote (SignatureHash)
//   - Best-effort memory wiping for sensitive byte slices and unlocked keys (Wipe, WipeKey)
//   - Short address fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Callers should treat private key bytes as sensitive and rely on Wipe when
// practical to reduce their lifetime in memory.
package crypto
