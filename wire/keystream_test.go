/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package wire

import (
	"bytes"
	"testing"
)

func TestObfuscateInvolution(t *testing.T) {
	orig := []byte("<Root><Pair><Client><Id>STR,4|1234</Id></Client></Pair></Root>")
	enc := obfuscate(append([]byte(nil), orig...))
	if bytes.Equal(enc, orig) {
		t.Fatal("obfuscate did not change the input")
	}
	dec := obfuscate(append([]byte(nil), enc...))
	if !bytes.Equal(dec, orig) {
		t.Fatalf("obfuscate(obfuscate(x)) != x: got %q want %q", dec, orig)
	}
}

func TestObfuscateLongerThanKeystream(t *testing.T) {
	orig := bytes.Repeat([]byte("abcdefgh"), 64) // 512 bytes, wraps the 128-byte keystream several times
	enc := obfuscate(append([]byte(nil), orig...))
	dec := obfuscate(append([]byte(nil), enc...))
	if !bytes.Equal(dec, orig) {
		t.Fatal("obfuscate did not round-trip past one keystream period")
	}
}

func TestObfuscateEmpty(t *testing.T) {
	if out := obfuscate([]byte{}); len(out) != 0 {
		t.Fatalf("expected empty output, got %q", out)
	}
}
