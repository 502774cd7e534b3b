/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package wire

import (
	"strings"
	"testing"
)

func TestEncodeXMLPreservesElementOrder(t *testing.T) {
	root := BuildPath("/Root/Host/SetZone", []*Node{
		Scalar("Total", EncodeS32(0, 0)),
		Scalar("Offset", EncodeS32(0, 0)),
		Scalar("Zone", EncodeS32(3, 0)),
		Scalar("Name", EncodeStr("Front Door")),
	})
	out, err := EncodeXML(root)
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}

	s := string(out)
	idx := func(tag string) int { return strings.Index(s, "<"+tag+">") }
	total, offset, zone, name := idx("Total"), idx("Offset"), idx("Zone"), idx("Name")
	if !(total < offset && offset < zone && zone < name) {
		t.Fatalf("element order not preserved: %s", s)
	}
	if !strings.HasPrefix(s, "<Root>") || !strings.Contains(s, "<Host><SetZone>") {
		t.Fatalf("unexpected structure: %s", s)
	}
	if strings.Contains(s, "<?xml") {
		t.Fatalf("unexpected XML prolog: %s", s)
	}
}

func TestEncodeXMLEmptySlot(t *testing.T) {
	root := Elem("Root", Slot("Total"))
	out, err := EncodeXML(root)
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	if string(out) != "<Root><Total></Total></Root>" {
		t.Fatalf("got %q", out)
	}
}

func TestDecodeXMLBuildsTreeAndDecodesLeaves(t *testing.T) {
	body := []byte(`<Root><Host><GetAlarmStatus><Total>S32,0,0|12</Total><Offset>S32,0,0|0</Offset><Ln>S32,0,0|8</Ln>` +
		`<L0><Zone>S32,0,0|1</Zone><Status>BOL|T</Status></L0>` +
		`<L1><Zone>S32,0,0|2</Zone><Status>BOL|F</Status></L1>` +
		`</GetAlarmStatus></Host></Root>`)

	root, err := DecodeXML(body, false)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}

	n, ok := root.SelectPath("Host/GetAlarmStatus/Total")
	if !ok {
		t.Fatal("could not select Total")
	}
	total, ok := n.Int64()
	if !ok || total != 12 {
		t.Fatalf("Total = %v, ok=%v, want 12", n.Value(), ok)
	}

	l0, ok := root.SelectPath("Host/GetAlarmStatus/L0")
	if !ok {
		t.Fatal("could not select L0")
	}
	status, ok := l0.Child("Status")
	if !ok || !status.Truthy() {
		t.Fatalf("L0/Status not truthy: %+v", status)
	}

	l1, ok := root.SelectPath("Host/GetAlarmStatus/L1")
	if !ok {
		t.Fatal("could not select L1")
	}
	status1, ok := l1.Child("Status")
	if !ok || status1.Truthy() {
		t.Fatalf("L1/Status should be falsy: %+v", status1)
	}
}

func TestDecodeXMLUnknownTagPassesThroughNonStrict(t *testing.T) {
	body := []byte(`<Root><Weird>not-a-tagged-scalar</Weird></Root>`)
	root, err := DecodeXML(body, false)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	w, ok := root.Child("Weird")
	if !ok || w.String() != "not-a-tagged-scalar" {
		t.Fatalf("got %+v", w)
	}
}

func TestDecodeXMLUnknownTagFailsStrict(t *testing.T) {
	body := []byte(`<Root><Weird>not-a-tagged-scalar</Weird></Root>`)
	if _, err := DecodeXML(body, true); err == nil {
		t.Fatal("expected CodecError in strict mode")
	}
}

func TestSelectPathMissingSegment(t *testing.T) {
	root := Elem("Root", Elem("Host"))
	if _, ok := root.SelectPath("Host/NoSuchThing"); ok {
		t.Fatal("expected no match")
	}
}

func TestEncodeDecodeXMLRoundTrip(t *testing.T) {
	root := BuildPath("/Root/Host/GetZone", []*Node{
		Scalar("Zone", EncodeS32(4, 0)),
		Scalar("Name", EncodeStr("Back Yard")),
	})
	out, err := EncodeXML(root)
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	decoded, err := DecodeXML(out, true)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	zone, ok := decoded.SelectPath("Host/GetZone/Zone")
	if !ok {
		t.Fatal("could not select Zone")
	}
	if v, ok := zone.Int64(); !ok || v != 4 {
		t.Fatalf("Zone = %v, want 4", zone.Value())
	}
	name, ok := decoded.SelectPath("Host/GetZone/Name")
	if !ok || name.Value().(string) != "Back Yard" {
		t.Fatalf("Name = %v", name.Value())
	}
}
