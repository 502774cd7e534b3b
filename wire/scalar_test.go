/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package wire

import (
	"net"
	"testing"
	"time"
)

func TestDecodeLeafBool(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeBool(true))
	if !matched || leaf.Value != true {
		t.Fatalf("got %+v matched=%v, want true", leaf, matched)
	}
	leaf, matched = DecodeLeaf(EncodeBool(false))
	if !matched || leaf.Value != false {
		t.Fatalf("got %+v matched=%v, want false", leaf, matched)
	}
}

func TestDecodeLeafS32(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeS32(-7, 3))
	if !matched {
		t.Fatal("expected match")
	}
	if leaf.Value.(int64) != -7 {
		t.Fatalf("value = %v, want -7", leaf.Value)
	}
}

func TestDecodeLeafStr(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeStr("hello world"))
	if !matched || leaf.Value.(string) != "hello world" {
		t.Fatalf("got %+v matched=%v", leaf, matched)
	}
}

func TestDecodeLeafStrEmpty(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeStr(""))
	if !matched || leaf.Value.(string) != "" {
		t.Fatalf("got %+v matched=%v, want empty string", leaf, matched)
	}
}

func TestDecodeLeafPwdRedacts(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodePwd("s3cret"))
	if !matched {
		t.Fatal("expected match")
	}
	pw, ok := leaf.Value.(Password)
	if !ok {
		t.Fatalf("value type = %T, want Password", leaf.Value)
	}
	if pw.String() != "REDACTED" {
		t.Fatalf("Password.String() = %q, want REDACTED", pw.String())
	}
	if string(pw) != "s3cret" {
		t.Fatalf("underlying password lost: %q", string(pw))
	}
}

func TestDecodeLeafNum(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeNum("0042", 4))
	if !matched || leaf.Value.(string) != "0042" {
		t.Fatalf("got %+v matched=%v", leaf, matched)
	}
}

func TestDecodeLeafTyp(t *testing.T) {
	labels := []string{"IN", "ANDROID", "IOS"}
	leaf, matched := DecodeLeaf(EncodeTyp(1, labels))
	if !matched || leaf.Value.(int64) != 1 {
		t.Fatalf("got %+v matched=%v", leaf, matched)
	}
}

func TestDecodeLeafDta(t *testing.T) {
	want := time.Date(2026, 8, 1, 12, 30, 45, 0, time.UTC)
	leaf, matched := DecodeLeaf(EncodeDta(want))
	if !matched {
		t.Fatal("expected match")
	}
	got := leaf.Value.(time.Time)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecodeLeafHma(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeHma(TimeOfDay{Hour: 7, Minute: 5}))
	if !matched {
		t.Fatal("expected match")
	}
	tod := leaf.Value.(TimeOfDay)
	if tod.Hour != 7 || tod.Minute != 5 {
		t.Fatalf("got %+v", tod)
	}
}

func TestDecodeLeafIpa(t *testing.T) {
	ip := net.ParseIP("192.168.1.100")
	leaf, matched := DecodeLeaf(EncodeIpa(ip))
	if !matched {
		t.Fatal("expected match")
	}
	got := leaf.Value.(net.IP)
	if !got.Equal(ip) {
		t.Fatalf("got %v, want %v", got, ip)
	}
}

func TestDecodeLeafMac(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeMac("AA:BB:CC:DD:EE:FF"))
	if !matched || leaf.Value.(string) != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("got %+v matched=%v", leaf, matched)
	}
}

func TestDecodeLeafNea(t *testing.T) {
	payload := []byte{0x01, 0xAB, 0xFF}
	leaf, matched := DecodeLeaf(EncodeNea(payload))
	if !matched {
		t.Fatal("expected match")
	}
	got := leaf.Value.([]byte)
	if string(got) != string(payload) {
		t.Fatalf("got %x, want %x", got, payload)
	}
}

func TestDecodeLeafErr(t *testing.T) {
	leaf, matched := DecodeLeaf(EncodeErr(7))
	if !matched || leaf.Value.(int) != 7 {
		t.Fatalf("got %+v matched=%v", leaf, matched)
	}
}

func TestDecodeLeafUnknownTagPassesThrough(t *testing.T) {
	raw := "XYZ,9|whatever"
	leaf, matched := DecodeLeaf(raw)
	if matched {
		t.Fatal("expected no match for unrecognized tag")
	}
	if leaf.Value.(string) != raw || leaf.Raw != raw {
		t.Fatalf("pass-through leaf corrupted: %+v", leaf)
	}
}
