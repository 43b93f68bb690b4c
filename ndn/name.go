/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/named-data/ndnc/ndn/util"
)

// NameComponent is a single typed component of an NDN name.
type NameComponent struct {
	typ   uint64
	value []byte
}

// NewNameComponent creates a name component of an arbitrary type.
func NewNameComponent(tlvType uint64, value []byte) NameComponent {
	return NameComponent{typ: tlvType, value: value}
}

// NewGenericNameComponent creates a GenericNameComponent.
func NewGenericNameComponent(value []byte) NameComponent {
	return NameComponent{typ: tlv.GenericNameComponent, value: value}
}

// NewStringNameComponent creates a GenericNameComponent holding the bytes of s.
func NewStringNameComponent(s string) NameComponent {
	return NewGenericNameComponent([]byte(s))
}

// NewNumberNameComponent creates a GenericNameComponent holding the NonNegativeInteger encoding of v.
func NewNumberNameComponent(v uint64) NameComponent {
	return NewGenericNameComponent(tlv.EncodeNNI(v))
}

// NewImplicitSha256DigestComponent creates an implicit digest component. The digest must be 32 bytes.
func NewImplicitSha256DigestComponent(digest []byte) (NameComponent, error) {
	if len(digest) != 32 {
		return NameComponent{}, util.ErrOutOfRange
	}
	return NameComponent{typ: tlv.ImplicitSha256DigestComponent, value: digest}, nil
}

// Type returns the TLV type of the name component.
func (c NameComponent) Type() uint64 {
	return c.typ
}

// Value returns the TLV value of the name component.
func (c NameComponent) Value() []byte {
	return c.value
}

// ToNumber decodes the value as a NonNegativeInteger.
func (c NameComponent) ToNumber() (uint64, error) {
	return tlv.DecodeNNI(c.value)
}

// Equals returns whether the two name components match.
func (c NameComponent) Equals(other NameComponent) bool {
	return c.typ == other.typ && bytes.Equal(c.value, other.value)
}

// Compare returns the canonical order of this component against another: by type, then by length, then by bytes.
func (c NameComponent) Compare(other NameComponent) int {
	if c.typ != other.typ {
		if c.typ < other.typ {
			return -1
		}
		return 1
	}
	if len(c.value) != len(other.value) {
		if len(c.value) < len(other.value) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.value, other.value)
}

// DeepCopy makes a deep copy of the name component.
func (c NameComponent) DeepCopy() NameComponent {
	value := make([]byte, len(c.value))
	copy(value, c.value)
	return NameComponent{typ: c.typ, value: value}
}

func (c NameComponent) String() string {
	switch c.typ {
	case tlv.GenericNameComponent:
		return escapeComponent(c.value)
	case tlv.ImplicitSha256DigestComponent:
		return "sha256digest=" + hex.EncodeToString(c.value)
	default:
		return strconv.FormatUint(c.typ, 10) + "=" + escapeComponent(c.value)
	}
}

func (c NameComponent) encode(e *tlv.Encoder) {
	e.WriteBlobTlv(c.typ, c.value)
}

func escapeComponent(in []byte) string {
	out := make([]byte, 0, 3*len(in)) // Capacity of 3 * len is worst case if every character has to be escaped
	nPeriods := 0
	for _, b := range in {
		switch {
		case b == '.':
			nPeriods++
			fallthrough
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '_' || b == '~' || b == '+':
			out = append(out, b)
		default:
			out = append(out, '%', 0, 0)
			hex.Encode(out[len(out)-2:], []byte{b})
		}
	}
	if nPeriods == len(in) {
		out = append(out, '.', '.', '.')
	}
	return string(out)
}

func unescapeComponent(in string) ([]byte, error) {
	if len(in) >= 3 && strings.Trim(in, ".") == "" {
		// "..." and longer all-period strings drop three periods
		return []byte(in[3:]), nil
	}
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == '%' {
			if len(in) <= i+2 {
				return nil, errors.New("incomplete escape sequence")
			}
			unescaped, err := hex.DecodeString(in[i+1 : i+3])
			if err != nil {
				return nil, errors.New("could not decode escape sequence")
			}
			out = append(out, unescaped...)
			i += 2
		} else {
			out = append(out, in[i])
		}
	}
	return out, nil
}

// NameComponentFromString parses the URI form of a single component.
func NameComponentFromString(str string) (NameComponent, error) {
	eq := strings.IndexByte(str, '=')
	if eq < 0 {
		value, err := unescapeComponent(str)
		if err != nil {
			return NameComponent{}, err
		}
		return NewGenericNameComponent(value), nil
	}

	typeStr, valueStr := str[:eq], str[eq+1:]
	if typeStr == "sha256digest" {
		digest, err := hex.DecodeString(valueStr)
		if err != nil {
			return NameComponent{}, errors.New("ImplicitSha256DigestComponent is not a hex string")
		}
		return NewImplicitSha256DigestComponent(digest)
	}
	t, err := strconv.ParseUint(typeStr, 10, 16)
	if err != nil {
		// '=' inside a generic component
		value, err := unescapeComponent(str)
		if err != nil {
			return NameComponent{}, err
		}
		return NewGenericNameComponent(value), nil
	}
	value, err := unescapeComponent(valueStr)
	if err != nil {
		return NameComponent{}, err
	}
	return NewNameComponent(t, value), nil
}

///////
// Name
///////

// Name represents an NDN name.
type Name struct {
	components []NameComponent
}

// NewName constructs an empty name.
func NewName() *Name {
	return new(Name)
}

// NameFromString decodes a name from its URI representation. A leading "ndn:" scheme is accepted.
func NameFromString(str string) (*Name, error) {
	n := new(Name)
	str = strings.TrimSpace(str)
	str = strings.TrimPrefix(str, "ndn:")
	str = strings.TrimPrefix(str, "//")
	str = strings.Trim(str, "/")
	if len(str) == 0 {
		return n, nil
	}

	for _, component := range strings.Split(str, "/") {
		c, err := NameComponentFromString(component)
		if err != nil {
			return nil, err
		}
		n.components = append(n.components, c)
	}
	return n, nil
}

// DecodeName decodes a Name element at the decoder's offset.
func DecodeName(d *tlv.Decoder) (*Name, error) {
	end, err := d.ReadNestedTlvsStart(tlv.Name)
	if err != nil {
		return nil, err
	}
	n := new(Name)
	for d.Offset() < end {
		tlvType, value, err := d.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		n.components = append(n.components, NewNameComponent(tlvType, append([]byte(nil), value...)))
	}
	if err := d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeNameWire decodes a Name from a complete wire encoding.
func DecodeNameWire(wire []byte) (*Name, error) {
	return DecodeName(tlv.NewDecoder(wire))
}

// Encode prepends the Name element to the encoder.
func (n *Name) Encode(e *tlv.Encoder) {
	e.WriteNested(tlv.Name, func(e *tlv.Encoder) {
		for i := len(n.components) - 1; i >= 0; i-- {
			n.components[i].encode(e)
		}
	})
}

// Wire returns the wire encoding of the name.
func (n *Name) Wire() []byte {
	e := tlv.NewEncoder(64)
	n.Encode(e)
	return e.Output()
}

func (n *Name) String() string {
	if n == nil || len(n.components) == 0 {
		return "/"
	}

	var out strings.Builder
	for _, component := range n.components {
		out.WriteByte('/')
		out.WriteString(component.String())
	}
	return out.String()
}

// Append adds the specified name component to the end of the name.
func (n *Name) Append(component NameComponent) *Name {
	n.components = append(n.components, component)
	return n
}

// AppendString adds a GenericNameComponent holding s.
func (n *Name) AppendString(s string) *Name {
	return n.Append(NewStringNameComponent(s))
}

// AppendName adds all components of other.
func (n *Name) AppendName(other *Name) *Name {
	n.components = append(n.components, other.components...)
	return n
}

// At returns the name component at the specified index. Negative indices count from the end.
// If out of range, an empty component of type 0 is returned.
func (n *Name) At(index int) NameComponent {
	if index < -len(n.components) || index >= len(n.components) {
		return NameComponent{}
	}

	if index < 0 {
		return n.components[len(n.components)+index]
	}
	return n.components[index]
}

// Components returns the components of the name.
func (n *Name) Components() []NameComponent {
	return n.components
}

// Compare returns the canonical order of this name against the specified other name.
func (n *Name) Compare(other *Name) int {
	for i := 0; i < n.Size() && i < other.Size(); i++ {
		if c := n.components[i].Compare(other.components[i]); c != 0 {
			return c
		}
	}

	switch {
	case n.Size() < other.Size():
		return -1
	case n.Size() > other.Size():
		return 1
	default:
		return 0
	}
}

// DeepCopy returns a deep copy of the name.
func (n *Name) DeepCopy() *Name {
	name := new(Name)
	name.components = make([]NameComponent, len(n.components))
	for i, component := range n.components {
		name.components[i] = component.DeepCopy()
	}
	return name
}

// Equals returns whether the specified name is equal to this name.
func (n *Name) Equals(other *Name) bool {
	if n.Size() != other.Size() {
		return false
	}
	return n.PrefixOf(other)
}

// Prefix returns a copy of the first size components. Negative size counts from the end.
func (n *Name) Prefix(size int) *Name {
	if size < 0 {
		size += len(n.components)
	}
	return n.SubName(0, size)
}

// SubName returns a copy of count components starting at start. If count runs past the end,
// the rest of the name is returned.
func (n *Name) SubName(start int, count int) *Name {
	if start < 0 {
		start += len(n.components)
	}
	if start < 0 {
		start = 0
	}
	if start > len(n.components) {
		start = len(n.components)
	}
	end := start + count
	if count < 0 || end > len(n.components) {
		end = len(n.components)
	}
	sub := new(Name)
	sub.components = make([]NameComponent, 0, end-start)
	for i := start; i < end; i++ {
		sub.components = append(sub.components, n.components[i].DeepCopy())
	}
	return sub
}

// PrefixOf returns whether this name is a prefix of the specified name.
func (n *Name) PrefixOf(other *Name) bool {
	if other == nil || n.Size() > other.Size() {
		return false
	}

	for i := 0; i < n.Size(); i++ {
		if !n.components[i].Equals(other.components[i]) {
			return false
		}
	}

	return true
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	if n == nil {
		return 0
	}
	return len(n.components)
}
