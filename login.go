/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"github.com/google/uuid"

	"github.com/wildstray/meian-client/wire"
)

const loginPath = "/Root/Pair/Client"

// login performs the one request/response login exchange and caches the
// decoded Client descriptor on success.
func (c *Client) login(id, password string) error {
	fields := []*wire.Node{
		wire.Scalar("Id", wire.EncodeStr(id)),
		wire.Scalar("Pwd", wire.EncodePwd(password)),
		wire.Scalar("Type", "TYP,ANDROID|0"),
		wire.Scalar("Token", wire.EncodeStr(uuid.New().String())),
		wire.Scalar("Action", "TYP,IN|0"),
		wire.Slot("Err"),
	}
	node, err := c.requestLocked(loginPath, fields)
	if err != nil {
		return err
	}
	if errNode, ok := node.Child("Err"); ok && errNode.Truthy() {
		code, _ := errNode.Int64()
		return &LoginError{Code: int(code)}
	}
	c.descriptor = node
	return nil
}
