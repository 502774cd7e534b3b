/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"fmt"

	"github.com/wildstray/meian-client/wire"
)

// paginationFields is the Total/Offset/Ln triple every list endpoint's
// request carries; Total and Ln are request slots the panel populates.
func paginationFields(offset int) []*wire.Node {
	return []*wire.Node{
		wire.Slot("Total"),
		wire.Scalar("Offset", wire.EncodeS32(int64(offset), 0)),
		wire.Slot("Ln"),
	}
}

// invokeList drives the Total/Offset/Ln pagination protocol: it calls
// fieldsFor(offset) to build each outbound request, accumulates
// L0..L{Ln-1} from each response, and loops until offset+Ln==Total. A
// chunk reporting Ln==0 while offset<Total is a protocol anomaly rather
// than a retry condition: the source recurses unconditionally, which
// would spin forever on this input, so a plain loop fails fast instead.
func (c *Client) invokeList(path string, fieldsFor func(offset int) []*wire.Node) ([]*wire.Node, error) {
	var out []*wire.Node
	offset := 0
	for {
		node, err := c.invoke(path, fieldsFor(offset))
		if err != nil {
			return nil, err
		}
		total, _ := childInt64(node, "Total")
		ln, _ := childInt64(node, "Ln")

		if ln == 0 && int64(offset) < total {
			return nil, &ProtocolError{Reason: fmt.Sprintf("%s: Ln==0 while offset %d < Total %d", path, offset, total)}
		}
		for i := 0; i < int(ln); i++ {
			item, ok := node.Child(fmt.Sprintf("L%d", i))
			if !ok {
				return nil, &ProtocolError{Reason: fmt.Sprintf("%s: response missing L%d", path, i)}
			}
			out = append(out, item)
		}
		offset += int(ln)
		if int64(offset) >= total {
			return out, nil
		}
	}
}

func childInt64(n *wire.Node, name string) (int64, bool) {
	c, ok := n.Child(name)
	if !ok {
		return 0, false
	}
	return c.Int64()
}
