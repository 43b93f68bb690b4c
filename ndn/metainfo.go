/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"
	"time"

	"github.com/named-data/ndnc/ndn/tlv"
)

// ContentType values.
const (
	ContentTypeBlob uint64 = 0
	ContentTypeLink uint64 = 1
	ContentTypeKey  uint64 = 2
	ContentTypeNack uint64 = 3
)

// MetaInfo represents the MetaInfo in a Data packet.
type MetaInfo struct {
	contentType     uint64
	freshnessPeriod *time.Duration
	finalBlockID    *NameComponent
}

// NewMetaInfo creates a new MetaInfo structure.
func NewMetaInfo() *MetaInfo {
	return new(MetaInfo)
}

func decodeMetaInfo(d *tlv.Decoder) (*MetaInfo, error) {
	end, err := d.ReadNestedTlvsStart(tlv.MetaInfo)
	if err != nil {
		return nil, err
	}

	m := new(MetaInfo)
	contentType, err := d.ReadOptionalNonNegativeIntegerTlv(tlv.ContentType, end)
	if err != nil {
		return nil, err
	}
	if contentType != nil {
		m.contentType = *contentType
	}
	freshness, err := d.ReadOptionalNonNegativeIntegerTlv(tlv.FreshnessPeriod, end)
	if err != nil {
		return nil, err
	}
	if freshness != nil {
		period := time.Duration(*freshness) * time.Millisecond
		m.freshnessPeriod = &period
	}
	if d.PeekType(tlv.FinalBlockID, end) {
		finalEnd, err := d.ReadNestedTlvsStart(tlv.FinalBlockID)
		if err != nil {
			return nil, err
		}
		tlvType, value, err := d.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		component := NewNameComponent(tlvType, append([]byte(nil), value...))
		m.finalBlockID = &component
		if err := d.FinishNestedTlvs(finalEnd, false); err != nil {
			return nil, err
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MetaInfo) String() string {
	str := "MetaInfo("
	str += "ContentType=" + strconv.FormatUint(m.contentType, 10)
	if m.freshnessPeriod != nil {
		str += ", FreshnessPeriod=" + strconv.FormatInt(m.freshnessPeriod.Milliseconds(), 10) + "ms"
	}
	if m.finalBlockID != nil {
		str += ", FinalBlockID=" + m.finalBlockID.String()
	}
	str += ")"
	return str
}

// ContentType returns the ContentType. BLOB when absent.
func (m *MetaInfo) ContentType() uint64 {
	return m.contentType
}

// SetContentType sets the ContentType.
func (m *MetaInfo) SetContentType(contentType uint64) {
	m.contentType = contentType
}

// FreshnessPeriod returns the FreshnessPeriod or nil if unset.
func (m *MetaInfo) FreshnessPeriod() *time.Duration {
	return m.freshnessPeriod
}

// SetFreshnessPeriod sets the FreshnessPeriod. Pass nil to unset it.
func (m *MetaInfo) SetFreshnessPeriod(freshnessPeriod *time.Duration) {
	m.freshnessPeriod = freshnessPeriod
}

// FinalBlockID returns the FinalBlockID or nil if unset.
func (m *MetaInfo) FinalBlockID() *NameComponent {
	return m.finalBlockID
}

// SetFinalBlockID sets the FinalBlockID. Pass nil to unset it.
func (m *MetaInfo) SetFinalBlockID(finalBlockID *NameComponent) {
	m.finalBlockID = finalBlockID
}

func (m *MetaInfo) encode(e *tlv.Encoder) {
	e.WriteNested(tlv.MetaInfo, func(e *tlv.Encoder) {
		if m.finalBlockID != nil {
			e.WriteNested(tlv.FinalBlockID, m.finalBlockID.encode)
		}
		if m.freshnessPeriod != nil {
			e.WriteNonNegativeIntegerTlv(tlv.FreshnessPeriod, uint64(m.freshnessPeriod.Milliseconds()))
		}
		if m.contentType != ContentTypeBlob {
			e.WriteNonNegativeIntegerTlv(tlv.ContentType, m.contentType)
		}
	})
}
