/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"net"
	"time"

	"github.com/wildstray/meian-client/wire"
)

// endpointInfo catalogues one command path for introspection; it isn't
// used for dispatch (the typed methods below call invoke/invokeList
// directly), but it gives callers a machine-readable list of what this
// client exercises, in place of ~50 copy-pasted methods.
type endpointInfo struct {
	Name string
	Path string
	List bool
}

var Endpoints = []endpointInfo{
	{"Login", loginPath, false},
	{"GetAlarmStatus", "/Root/Host/GetAlarmStatus", false},
	{"SetAlarmStatus", "/Root/Host/SetAlarmStatus", false},
	{"GetZone", "/Root/Host/GetZone", true},
	{"SetZone", "/Root/Host/SetZone", false},
	{"GetEvents", "/Root/Host/GetEvents", true},
	{"GetByWay", "/Root/Host/GetByWay", true},
	{"GetDefense", "/Root/Host/GetDefense", true},
	{"GetOverlapZone", "/Root/Host/GetOverlapZone", true},
	{"SetOverlapZone", "/Root/Host/SetOverlapZone", false},
	{"GetSys", "/Root/Host/GetSys", false},
	{"SetSys", "/Root/Host/SetSys", false},
	{"GetTime", "/Root/Host/GetTime", false},
	{"SetTime", "/Root/Host/SetTime", false},
	{"GetNet", "/Root/Host/GetNet", false},
	{"SetNet", "/Root/Host/SetNet", false},
	{"GetWlsList", "/Root/Host/GetWlsList", true},
}

// GetAlarmStatus returns the raw device-status subtree. The firmware's
// DevStatus shape is not part of the documented tag grammar, so callers
// get the decoded node and walk it themselves.
func (c *Client) GetAlarmStatus() (*wire.Node, error) {
	return c.invoke("/Root/Host/GetAlarmStatus", []*wire.Node{
		wire.Slot("DevStatus"),
		wire.Slot("Err"),
	})
}

// SetAlarmStatus arms, disarms, or otherwise transitions alarm status.
// labels names the TYP ordinals status indexes into (e.g. ARM/DISARM/
// STAY/CLEAR).
func (c *Client) SetAlarmStatus(status int, labels []string) error {
	_, err := c.invoke("/Root/Host/SetAlarmStatus", []*wire.Node{
		wire.Scalar("Status", wire.EncodeTyp(status, labels)),
		wire.Slot("Err"),
	})
	return err
}

// Zone is one entry of GetZone's paginated list.
type Zone struct {
	Index int
	Type  int64
	Name  string
}

func (c *Client) GetZone() ([]Zone, error) {
	nodes, err := c.invokeList("/Root/Host/GetZone", paginationFields)
	if err != nil {
		return nil, err
	}
	zones := make([]Zone, 0, len(nodes))
	for i, n := range nodes {
		typ, _ := childInt64(n, "Type")
		name := ""
		if nm, ok := n.Child("Name"); ok {
			name = nm.String()
		}
		zones = append(zones, Zone{Index: i, Type: typ, Name: name})
	}
	return zones, nil
}

// SetZone renames and retypes a single zone. labels names the TYP
// ordinals typ indexes into.
func (c *Client) SetZone(zone int, typ int, labels []string, name string) error {
	_, err := c.invoke("/Root/Host/SetZone", []*wire.Node{
		wire.Scalar("Zone", wire.EncodeS32(int64(zone), 0)),
		wire.Scalar("Type", wire.EncodeTyp(typ, labels)),
		wire.Scalar("Name", wire.EncodeStr(name)),
		wire.Slot("Err"),
	})
	return err
}

// Event is one entry of GetEvents's paginated list.
type Event struct {
	Time time.Time
	Type int64
}

func (c *Client) GetEvents() ([]Event, error) {
	nodes, err := c.invokeList("/Root/Host/GetEvents", paginationFields)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(nodes))
	for _, n := range nodes {
		var ev Event
		if t, ok := n.Child("Time"); ok {
			if tv, ok := t.Value().(time.Time); ok {
				ev.Time = tv
			}
		}
		ev.Type, _ = childInt64(n, "Type")
		events = append(events, ev)
	}
	return events, nil
}

// GetByWay returns the raw subtree of each entry; the "by-way" shape
// mixes several undocumented tags and is left to the caller to inspect.
func (c *Client) GetByWay() ([]*wire.Node, error) {
	return c.invokeList("/Root/Host/GetByWay", paginationFields)
}

// DefenseWindow is one entry of GetDefense's paginated list: a daily
// arm/disarm schedule window.
type DefenseWindow struct {
	Start, End wire.TimeOfDay
}

func (c *Client) GetDefense() ([]DefenseWindow, error) {
	nodes, err := c.invokeList("/Root/Host/GetDefense", paginationFields)
	if err != nil {
		return nil, err
	}
	windows := make([]DefenseWindow, 0, len(nodes))
	for _, n := range nodes {
		var w DefenseWindow
		if s, ok := n.Child("Start"); ok {
			if v, ok := s.Value().(wire.TimeOfDay); ok {
				w.Start = v
			}
		}
		if e, ok := n.Child("End"); ok {
			if v, ok := e.Value().(wire.TimeOfDay); ok {
				w.End = v
			}
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// OverlapZone is one entry of GetOverlapZone's paginated list: a pair of
// zones that must both trip within Time seconds to raise an alarm.
type OverlapZone struct {
	Zone1, Zone2 int
	Time         int
}

func (c *Client) GetOverlapZone() ([]OverlapZone, error) {
	nodes, err := c.invokeList("/Root/Host/GetOverlapZone", paginationFields)
	if err != nil {
		return nil, err
	}
	zones := make([]OverlapZone, 0, len(nodes))
	for _, n := range nodes {
		z1, _ := childInt64(n, "Zone1")
		z2, _ := childInt64(n, "Zone2")
		t, _ := childInt64(n, "Time")
		zones = append(zones, OverlapZone{Zone1: int(z1), Zone2: int(z2), Time: int(t)})
	}
	return zones, nil
}

// SetOverlapZone writes Zone1, Zone2, and Time as three distinct fields.
func (c *Client) SetOverlapZone(zone1, zone2, seconds int) error {
	_, err := c.invoke("/Root/Host/SetOverlapZone", []*wire.Node{
		wire.Scalar("Zone1", wire.EncodeS32(int64(zone1), 0)),
		wire.Scalar("Zone2", wire.EncodeS32(int64(zone2), 0)),
		wire.Scalar("Time", wire.EncodeS32(int64(seconds), 0)),
		wire.Slot("Err"),
	})
	return err
}

// SysConfig is the panel-wide configuration surfaced by GetSys/SetSys.
type SysConfig struct {
	AlarmDelay int
	// Comeloss mirrors the panel's "communication loss" alert toggle.
	Comeloss bool
	Mode     int64
}

func (c *Client) GetSys() (SysConfig, error) {
	node, err := c.invoke("/Root/Host/GetSys", []*wire.Node{
		wire.Slot("AlarmDelay"),
		wire.Slot("Comeloss"),
		wire.Slot("Mode"),
		wire.Slot("Err"),
	})
	if err != nil {
		return SysConfig{}, err
	}
	var cfg SysConfig
	if v, ok := childInt64(node, "AlarmDelay"); ok {
		cfg.AlarmDelay = int(v)
	}
	if v, ok := node.Child("Comeloss"); ok {
		cfg.Comeloss = v.Truthy()
	}
	cfg.Mode, _ = childInt64(node, "Mode")
	return cfg, nil
}

// SetSys writes cfg. labels names the TYP ordinals cfg.Mode indexes into.
func (c *Client) SetSys(cfg SysConfig, labels []string) error {
	_, err := c.invoke("/Root/Host/SetSys", []*wire.Node{
		wire.Scalar("AlarmDelay", wire.EncodeS32(int64(cfg.AlarmDelay), 0)),
		wire.Scalar("Comeloss", wire.EncodeBool(cfg.Comeloss)),
		wire.Scalar("Mode", wire.EncodeTyp(int(cfg.Mode), labels)),
		wire.Slot("Err"),
	})
	return err
}

// TimeConfig is the panel clock configuration surfaced by GetTime/SetTime.
type TimeConfig struct {
	AutoSync bool
	Zone     string
	Format   int64
	Now      time.Time
}

func (c *Client) GetTime() (TimeConfig, error) {
	node, err := c.invoke("/Root/Host/GetTime", []*wire.Node{
		wire.Slot("AutoSync"),
		wire.Slot("Zone"),
		wire.Slot("Format"),
		wire.Slot("Now"),
		wire.Slot("Err"),
	})
	if err != nil {
		return TimeConfig{}, err
	}
	var cfg TimeConfig
	if v, ok := node.Child("AutoSync"); ok {
		cfg.AutoSync = v.Truthy()
	}
	if v, ok := node.Child("Zone"); ok {
		cfg.Zone = v.String()
	}
	cfg.Format, _ = childInt64(node, "Format")
	if v, ok := node.Child("Now"); ok {
		if t, ok := v.Value().(time.Time); ok {
			cfg.Now = t
		}
	}
	return cfg, nil
}

// SetTime writes cfg. labels names the TYP ordinals cfg.Format indexes into.
func (c *Client) SetTime(cfg TimeConfig, labels []string) error {
	_, err := c.invoke("/Root/Host/SetTime", []*wire.Node{
		wire.Scalar("AutoSync", wire.EncodeBool(cfg.AutoSync)),
		wire.Scalar("Zone", wire.EncodeStr(cfg.Zone)),
		wire.Scalar("Format", wire.EncodeTyp(int(cfg.Format), labels)),
		wire.Scalar("Now", wire.EncodeDta(cfg.Now)),
		wire.Slot("Err"),
	})
	return err
}

// NetConfig is the panel network configuration surfaced by GetNet/SetNet.
type NetConfig struct {
	Mac string
	IP  net.IP
}

func (c *Client) GetNet() (NetConfig, error) {
	node, err := c.invoke("/Root/Host/GetNet", []*wire.Node{
		wire.Slot("Mac"),
		wire.Slot("Ip"),
		wire.Slot("Err"),
	})
	if err != nil {
		return NetConfig{}, err
	}
	var cfg NetConfig
	if v, ok := node.Child("Mac"); ok {
		cfg.Mac = v.String()
	}
	if v, ok := node.Child("Ip"); ok {
		if ip, ok := v.Value().(net.IP); ok {
			cfg.IP = ip
		}
	}
	return cfg, nil
}

func (c *Client) SetNet(cfg NetConfig) error {
	_, err := c.invoke("/Root/Host/SetNet", []*wire.Node{
		wire.Scalar("Mac", wire.EncodeMac(cfg.Mac)),
		wire.Scalar("Ip", wire.EncodeIpa(cfg.IP)),
		wire.Slot("Err"),
	})
	return err
}

// WlsEntry is one entry of GetWlsList's paginated list: a visible
// wireless network and its opaque key material.
type WlsEntry struct {
	Signal string
	Key    []byte
}

func (c *Client) GetWlsList() ([]WlsEntry, error) {
	nodes, err := c.invokeList("/Root/Host/GetWlsList", paginationFields)
	if err != nil {
		return nil, err
	}
	entries := make([]WlsEntry, 0, len(nodes))
	for _, n := range nodes {
		var e WlsEntry
		if s, ok := n.Child("Signal"); ok {
			e.Signal = s.String()
		}
		if k, ok := n.Child("Key"); ok {
			if b, ok := k.Value().([]byte); ok {
				e.Key = b
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
