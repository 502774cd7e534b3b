/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package wire

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of the ordered command tree. A node is in
// exactly one of three states: it holds Children (a nested element), it
// holds a Leaf (a scalar value), or it holds neither -- an empty
// "request slot" the caller wants the panel
// to populate, which is serialized as an empty element.
//
// Children is a slice, never a map, because outbound element order is
// protocol-significant.
type Node struct {
	Name     string
	Children []*Node
	Leaf     *Leaf
}

// Elem builds an element node with the given children, in order.
func Elem(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Scalar builds a leaf node carrying an already-encoded scalar, e.g. the
// output of EncodeStr or EncodeBool.
func Scalar(name, raw string) *Node {
	return &Node{Name: name, Leaf: &Leaf{Raw: raw}}
}

// Slot builds an empty request slot: a field the caller wants the panel
// to populate in its response, sent as an empty element.
func Slot(name string) *Node {
	return &Node{Name: name}
}

// BuildPath constructs the nested single-child chain named by a
// slash-separated path (e.g. "/Root/Host/GetZone"), with fields attached
// as the children of the final path element. This is the equivalent of
// the original client's dict-nesting helper: the first path segment
// becomes the outermost XML element, with no synthetic wrapper added.
func BuildPath(path string, fields []*Node) *Node {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	leaf := &Node{Name: parts[len(parts)-1], Children: fields}
	node := leaf
	for i := len(parts) - 2; i >= 0; i-- {
		node = &Node{Name: parts[i], Children: []*Node{node}}
	}
	return node
}

// Child looks up an immediate child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// SelectPath walks a slash-separated path of child names from n,
// returning the node found there, if any. It is the read-side
// counterpart of BuildPath.
func (n *Node) SelectPath(path string) (*Node, bool) {
	cur := n
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		next, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Value returns the decoded leaf value, or nil if n is not a leaf.
func (n *Node) Value() any {
	if n == nil || n.Leaf == nil {
		return nil
	}
	return n.Leaf.Value
}

// Int64 returns the leaf's value coerced to an integer. It accepts the
// native int64 produced by S32/TYP decoding, the int produced by ERR
// decoding, and the digit string produced by NUM decoding.
func (n *Node) Int64() (int64, bool) {
	switch v := n.Value().(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Truthy reports whether the leaf represents a non-zero/non-empty
// value, the test an Err field's presence-of-failure check relies on.
func (n *Node) Truthy() bool {
	if n == nil || n.Leaf == nil {
		return false
	}
	switch v := n.Leaf.Value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != "" && v != "0"
	default:
		return n.Leaf.Raw != ""
	}
}

// String renders the leaf for display/logging: the decoded value if one
// exists, otherwise the raw encoded text.
func (n *Node) String() string {
	if n == nil || n.Leaf == nil {
		return ""
	}
	if n.Leaf.Value != nil {
		return fmt.Sprint(n.Leaf.Value)
	}
	return n.Leaf.Raw
}

// MarshalXML implements xml.Marshaler so a Node tree serializes with its
// own element order, no attributes, and no synthetic wrapper.
func (n *Node) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: n.Name}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: c.Name}}); err != nil {
			return err
		}
	}
	if len(n.Children) == 0 && n.Leaf != nil {
		if err := e.EncodeToken(xml.CharData([]byte(n.Leaf.Raw))); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// EncodeXML serializes a Node tree to attribute-free, prolog-free XML.
func EncodeXML(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CodecError reports an XML parse failure, or, in strict mode, a leaf
// whose text didn't match any tagged-scalar rule.
type CodecError struct {
	Reason string
	Err    error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return "wire: codec error: " + e.Reason + ": " + e.Err.Error()
	}
	return "wire: codec error: " + e.Reason
}

func (e *CodecError) Unwrap() error { return e.Err }

// DecodeXML parses an inbound XML body into a Node tree, ignoring
// attributes. Every leaf whose text matches the tagged-scalar grammar
// is rewritten to its native value; non-matching leaves remain strings
// unless strict is set, in which case an unmatched leaf is a CodecError.
func DecodeXML(data []byte, strict bool) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &CodecError{Reason: "failed to locate root element", Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, start, strict)
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement, strict bool) (*Node, error) {
	node := &Node{Name: start.Name.Local}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &CodecError{Reason: fmt.Sprintf("parsing element %q", node.Name), Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t, strict)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(node.Children) == 0 {
				raw := strings.TrimSpace(text.String())
				if raw != "" {
					leaf, matched := DecodeLeaf(raw)
					if strict && !matched {
						return nil, &CodecError{Reason: fmt.Sprintf("leaf %q: %q matches no tagged-scalar rule", node.Name, raw)}
					}
					node.Leaf = &leaf
				}
			}
			return node, nil
		}
	}
}
