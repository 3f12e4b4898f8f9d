package crypto

import (
	"crypto/ecdsa"
	"runtime"
)

// Wipe zeroes b in place. Best-effort: the garbage collector may already
// have copied the bytes elsewhere.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(&b)
}

// WipeKey zeroes the scalar of an unlocked private key. The key is unusable
// afterwards.
//
//go:noinline
func WipeKey(sk *ecdsa.PrivateKey) {
	if sk == nil || sk.D == nil {
		return
	}
	words := sk.D.Bits()
	clear(words)
	sk.D.SetInt64(0)
	runtime.KeepAlive(sk)
}
