package crypto

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"chainvote/internal/domain"
)

// SignatureLength is the size of an [R || S || V] secp256k1 signature.
const SignatureLength = ethcrypto.SignatureLength

// VotePayload returns the exact message a voter signs: {"vote":"yes"} or
// {"vote":"no"}.
func VotePayload(choice domain.Choice) ([]byte, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("invalid choice %q", choice)
	}
	return json.Marshal(domain.VoteMessage{Vote: choice})
}

// PersonalSign signs the EIP-191 text hash of msg. The recovery byte is
// returned as 27 or 28, matching what wallets return for personal_sign.
func PersonalSign(sk *ecdsa.PrivateKey, msg []byte) ([]byte, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(msg), sk)
	if err != nil {
		return nil, err
	}
	sig[ethcrypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner returns the address that produced sig over msg. Both 0/1 and
// 27/28 recovery bytes are accepted.
func RecoverSigner(msg, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	s := make([]byte, SignatureLength)
	copy(s, sig)
	if s[ethcrypto.RecoveryIDOffset] >= 27 {
		s[ethcrypto.RecoveryIDOffset] -= 27
	}
	pub, err := ethcrypto.SigToPub(accounts.TextHash(msg), s)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// SignatureHash is the keccak256 digest of a signature, the value recorded
// on-chain alongside each vote.
func SignatureHash(sig []byte) common.Hash {
	return ethcrypto.Keccak256Hash(sig)
}
