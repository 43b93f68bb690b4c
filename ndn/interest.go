/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/named-data/ndnc/ndn/util"
)

// Interest represents an NDN Interest packet.
type Interest struct {
	name                *Name
	minSuffixComponents *uint64
	maxSuffixComponents *uint64
	keyLocator          *KeyLocator
	exclude             *Exclude
	childSelector       *uint64
	mustBeFresh         bool
	canBePrefix         bool
	nonce               []byte
	lifetime            *time.Duration
	forwardingHint      []*Delegation
	hopLimit            *uint8
	parameters          []byte
}

// NewInterest creates a new Interest with the specified name and no selectors.
// The nonce is left empty and is filled in when the Interest is expressed.
func NewInterest(name *Name) *Interest {
	i := new(Interest)
	i.name = name.DeepCopy()
	return i
}

// DecodeInterest decodes an Interest from its wire encoding.
func DecodeInterest(wire []byte) (*Interest, error) {
	d := tlv.NewDecoder(wire)
	i, err := decodeInterest(d)
	if err != nil {
		return nil, tlv.NewDecodeError(d.Offset(), err)
	}
	return i, nil
}

func decodeInterest(d *tlv.Decoder) (*Interest, error) {
	end, err := d.ReadNestedTlvsStart(tlv.Interest)
	if err != nil {
		return nil, err
	}

	i := new(Interest)
	mostRecentElem := 0
	for d.Offset() < end {
		elemStart := d.Offset()
		tlvType, value, err := d.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		switch tlvType {
		case tlv.Name:
			if mostRecentElem >= 1 {
				return nil, errors.New("Name is duplicate or out-of-order")
			}
			mostRecentElem = 1
			d.Seek(elemStart)
			if i.name, err = DecodeName(d); err != nil {
				return nil, err
			}
		case tlv.Selectors:
			if mostRecentElem >= 2 {
				return nil, errors.New("Selectors is duplicate or out-of-order")
			}
			mostRecentElem = 2
			d.Seek(elemStart)
			if err = i.decodeSelectors(d); err != nil {
				return nil, err
			}
		case tlv.CanBePrefix:
			if mostRecentElem >= 2 {
				return nil, errors.New("CanBePrefix is duplicate or out-of-order")
			}
			mostRecentElem = 2
			i.canBePrefix = true
		case tlv.MustBeFresh:
			if mostRecentElem >= 3 {
				return nil, errors.New("MustBeFresh is duplicate or out-of-order")
			}
			mostRecentElem = 3
			i.mustBeFresh = true
		case tlv.Nonce:
			if mostRecentElem >= 5 {
				return nil, errors.New("Nonce is duplicate or out-of-order")
			}
			mostRecentElem = 5
			if err = i.SetNonce(append([]byte(nil), value...)); err != nil {
				return nil, err
			}
		case tlv.InterestLifetime:
			if mostRecentElem >= 6 {
				return nil, errors.New("InterestLifetime is duplicate or out-of-order")
			}
			mostRecentElem = 6
			lifetime, err := tlv.DecodeNNI(value)
			if err != nil {
				return nil, err
			}
			i.SetLifetime(time.Duration(lifetime) * time.Millisecond)
		case tlv.ForwardingHint:
			if mostRecentElem >= 7 {
				return nil, errors.New("ForwardingHint is duplicate or out-of-order")
			}
			mostRecentElem = 7
			hint := tlv.NewDecoder(value)
			for hint.Offset() < len(value) {
				delegation, err := decodeDelegation(hint)
				if err != nil {
					return nil, err
				}
				i.forwardingHint = append(i.forwardingHint, delegation)
			}
		case tlv.HopLimit:
			if mostRecentElem >= 8 {
				return nil, errors.New("HopLimit is duplicate or out-of-order")
			}
			mostRecentElem = 8
			if len(value) != 1 {
				return nil, errors.New("error decoding HopLimit")
			}
			hopLimit := value[0]
			i.hopLimit = &hopLimit
		case tlv.ApplicationParameters:
			if mostRecentElem >= 9 {
				return nil, errors.New("ApplicationParameters is duplicate or out-of-order")
			}
			mostRecentElem = 9
			i.parameters = append([]byte(nil), value...)
		default:
			if tlv.IsCritical(tlvType) && mostRecentElem < 9 {
				return nil, tlv.ErrUnrecognizedCritical
			}
		}
	}
	if i.name == nil {
		return nil, util.ErrNonExistent
	}
	return i, nil
}

func (i *Interest) decodeSelectors(d *tlv.Decoder) error {
	end, err := d.ReadNestedTlvsStart(tlv.Selectors)
	if err != nil {
		return err
	}
	if i.minSuffixComponents, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.MinSuffixComponents, end); err != nil {
		return err
	}
	if i.maxSuffixComponents, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.MaxSuffixComponents, end); err != nil {
		return err
	}
	if d.PeekType(tlv.PublisherPublicKeyLocator, end) {
		locatorEnd, err := d.ReadNestedTlvsStart(tlv.PublisherPublicKeyLocator)
		if err != nil {
			return err
		}
		if i.keyLocator, err = decodeKeyLocator(d); err != nil {
			return err
		}
		if err := d.FinishNestedTlvs(locatorEnd, false); err != nil {
			return err
		}
	}
	if d.PeekType(tlv.Exclude, end) {
		if i.exclude, err = decodeExclude(d); err != nil {
			return err
		}
	}
	if i.childSelector, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.ChildSelector, end); err != nil {
		return err
	}
	if i.mustBeFresh, err = d.ReadBooleanTlv(tlv.MustBeFresh, end); err != nil {
		return err
	}
	return d.FinishNestedTlvs(end, false)
}

func (i *Interest) String() string {
	str := "Interest(Name=" + i.name.String()

	if i.minSuffixComponents != nil {
		str += ", MinSuffixComponents=" + strconv.FormatUint(*i.minSuffixComponents, 10)
	}
	if i.maxSuffixComponents != nil {
		str += ", MaxSuffixComponents=" + strconv.FormatUint(*i.maxSuffixComponents, 10)
	}
	if i.exclude.Size() > 0 {
		str += ", Exclude=" + i.exclude.String()
	}
	if i.childSelector != nil {
		str += ", ChildSelector=" + strconv.FormatUint(*i.childSelector, 10)
	}
	if i.canBePrefix {
		str += ", CanBePrefix"
	}
	if i.mustBeFresh {
		str += ", MustBeFresh"
	}
	if len(i.forwardingHint) > 0 {
		str += ", ForwardingHint("
		for j, delegation := range i.forwardingHint {
			if j > 0 {
				str += ", "
			}
			str += delegation.String()
		}
		str += ")"
	}
	if len(i.nonce) > 0 {
		str += ", Nonce=0x" + hex.EncodeToString(i.nonce)
	}
	if i.lifetime != nil {
		str += ", Lifetime=" + strconv.FormatInt(i.lifetime.Milliseconds(), 10) + "ms"
	}
	if i.hopLimit != nil {
		str += ", HopLimit=" + strconv.FormatUint(uint64(*i.hopLimit), 10)
	}
	str += ")"
	return str
}

// DeepCopy returns a copy that shares no mutable state with i.
func (i *Interest) DeepCopy() *Interest {
	c := *i
	c.name = i.name.DeepCopy()
	c.exclude = i.exclude.DeepCopy()
	c.nonce = append([]byte(nil), i.nonce...)
	c.forwardingHint = make([]*Delegation, len(i.forwardingHint))
	for j, delegation := range i.forwardingHint {
		c.forwardingHint[j] = delegation.DeepCopy()
	}
	if i.parameters != nil {
		c.parameters = append([]byte(nil), i.parameters...)
	}
	return &c
}

// MatchesName returns whether a Data packet with this name satisfies the Interest:
// the Interest name is a prefix, the suffix length (counting the implicit digest) is within
// MinSuffixComponents and MaxSuffixComponents, and the component following the prefix
// is not excluded.
func (i *Interest) MatchesName(name *Name) bool {
	if !i.name.PrefixOf(name) {
		return false
	}
	// Add 1 for the implicit digest
	suffixLength := uint64(name.Size() + 1 - i.name.Size())
	if i.minSuffixComponents != nil && suffixLength < *i.minSuffixComponents {
		return false
	}
	if i.maxSuffixComponents != nil && suffixLength > *i.maxSuffixComponents {
		return false
	}
	if i.exclude.Size() > 0 && name.Size() > i.name.Size() && i.exclude.Matches(name.At(i.name.Size())) {
		return false
	}
	return true
}

// MatchesData returns whether the Data satisfies the Interest. An Interest whose last component
// is an implicit digest matches only the Data whose encoding has that digest.
func (i *Interest) MatchesData(data *Data) bool {
	if i.name.Size() == data.Name().Size()+1 && i.name.At(-1).Type() == tlv.ImplicitSha256DigestComponent {
		if !i.name.Prefix(-1).Equals(data.Name()) || data.wire == nil {
			return false
		}
		digest := sha256.Sum256(data.wire)
		return bytes.Equal(digest[:], i.name.At(-1).Value())
	}
	return i.MatchesName(data.Name())
}

// Encode returns the wire encoding of the Interest. A random nonce is encoded if none is set.
func (i *Interest) Encode() []byte {
	e := tlv.NewEncoder(256)
	e.WriteNested(tlv.Interest, func(e *tlv.Encoder) {
		if len(i.forwardingHint) > 0 {
			e.WriteNested(tlv.ForwardingHint, func(e *tlv.Encoder) {
				for j := len(i.forwardingHint) - 1; j >= 0; j-- {
					i.forwardingHint[j].encode(e)
				}
			})
		}
		if i.lifetime != nil {
			e.WriteNonNegativeIntegerTlv(tlv.InterestLifetime, uint64(i.lifetime.Milliseconds()))
		}
		nonce := i.nonce
		if len(nonce) == 0 {
			nonce = generateNonce()
		}
		e.WriteBlobTlv(tlv.Nonce, nonce)
		if i.hasSelectors() {
			e.WriteNested(tlv.Selectors, i.encodeSelectors)
		}
		i.name.Encode(e)
	})
	return e.Output()
}

func (i *Interest) hasSelectors() bool {
	return i.minSuffixComponents != nil || i.maxSuffixComponents != nil || i.keyLocator != nil ||
		i.exclude.Size() > 0 || i.childSelector != nil || i.mustBeFresh
}

func (i *Interest) encodeSelectors(e *tlv.Encoder) {
	if i.mustBeFresh {
		e.WriteTypeAndLength(tlv.MustBeFresh, 0)
	}
	e.WriteOptionalNonNegativeIntegerTlv(tlv.ChildSelector, i.childSelector)
	if i.exclude.Size() > 0 {
		i.exclude.encode(e)
	}
	if i.keyLocator != nil {
		e.WriteNested(tlv.PublisherPublicKeyLocator, i.keyLocator.encode)
	}
	e.WriteOptionalNonNegativeIntegerTlv(tlv.MaxSuffixComponents, i.maxSuffixComponents)
	e.WriteOptionalNonNegativeIntegerTlv(tlv.MinSuffixComponents, i.minSuffixComponents)
}

func generateNonce() []byte {
	nonce := make([]byte, 4)
	rand.Read(nonce)
	return nonce
}

//////////////////
// Setters/Getters
//////////////////

// Name returns the name of the Interest packet.
func (i *Interest) Name() *Name {
	return i.name
}

// SetName sets the name of the Interest packet.
func (i *Interest) SetName(name *Name) {
	i.name = name.DeepCopy()
}

// MinSuffixComponents returns the MinSuffixComponents selector or nil.
func (i *Interest) MinSuffixComponents() *uint64 {
	return i.minSuffixComponents
}

// SetMinSuffixComponents sets the MinSuffixComponents selector. Pass nil to unset it.
func (i *Interest) SetMinSuffixComponents(v *uint64) {
	i.minSuffixComponents = v
}

// MaxSuffixComponents returns the MaxSuffixComponents selector or nil.
func (i *Interest) MaxSuffixComponents() *uint64 {
	return i.maxSuffixComponents
}

// SetMaxSuffixComponents sets the MaxSuffixComponents selector. Pass nil to unset it.
func (i *Interest) SetMaxSuffixComponents(v *uint64) {
	i.maxSuffixComponents = v
}

// PublisherPublicKeyLocator returns the key locator selector or nil.
func (i *Interest) PublisherPublicKeyLocator() *KeyLocator {
	return i.keyLocator
}

// SetPublisherPublicKeyLocator sets the key locator selector.
func (i *Interest) SetPublisherPublicKeyLocator(k *KeyLocator) {
	i.keyLocator = k
}

// Exclude returns the Exclude selector or nil.
func (i *Interest) Exclude() *Exclude {
	return i.exclude
}

// SetExclude sets the Exclude selector.
func (i *Interest) SetExclude(exclude *Exclude) {
	i.exclude = exclude
}

// ChildSelector returns the ChildSelector or nil.
func (i *Interest) ChildSelector() *uint64 {
	return i.childSelector
}

// SetChildSelector sets the ChildSelector. Pass nil to unset it.
func (i *Interest) SetChildSelector(v *uint64) {
	i.childSelector = v
}

// MustBeFresh returns whether the MustBeFresh flag is set.
func (i *Interest) MustBeFresh() bool {
	return i.mustBeFresh
}

// SetMustBeFresh sets the MustBeFresh flag.
func (i *Interest) SetMustBeFresh(mustBeFresh bool) {
	i.mustBeFresh = mustBeFresh
}

// CanBePrefix returns whether a decoded Interest carried CanBePrefix.
func (i *Interest) CanBePrefix() bool {
	return i.canBePrefix
}

// ForwardingHint returns the delegations in the ForwardingHint.
func (i *Interest) ForwardingHint() []*Delegation {
	return i.forwardingHint
}

// AppendForwardingHint adds a delegation to the ForwardingHint.
func (i *Interest) AppendForwardingHint(delegation *Delegation) {
	i.forwardingHint = append(i.forwardingHint, delegation.DeepCopy())
}

// Nonce returns the nonce, empty if unset.
func (i *Interest) Nonce() []byte {
	return i.nonce
}

// ResetNonce sets a new random nonce.
func (i *Interest) ResetNonce() {
	i.nonce = generateNonce()
}

// SetNonce sets the nonce, which must be 4 bytes.
func (i *Interest) SetNonce(nonce []byte) error {
	if len(nonce) != 4 {
		return util.ErrOutOfRange
	}
	i.nonce = nonce
	return nil
}

// Lifetime returns the InterestLifetime or nil if unset.
func (i *Interest) Lifetime() *time.Duration {
	return i.lifetime
}

// LifetimeOrDefault returns the InterestLifetime, or DefaultInterestLifetime if unset.
func (i *Interest) LifetimeOrDefault() time.Duration {
	if i.lifetime == nil {
		return DefaultInterestLifetime
	}
	return *i.lifetime
}

// SetLifetime sets the InterestLifetime.
func (i *Interest) SetLifetime(lifetime time.Duration) {
	i.lifetime = &lifetime
}

// HopLimit returns the HopLimit of a decoded Interest or nil.
func (i *Interest) HopLimit() *uint8 {
	return i.hopLimit
}

// ApplicationParameters returns the ApplicationParameters value of a decoded Interest or nil.
func (i *Interest) ApplicationParameters() []byte {
	return i.parameters
}
