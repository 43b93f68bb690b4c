/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "strings"

// InterestFilter selects incoming Interests by name prefix and, optionally, by an NDN regex
// over the components that follow the prefix.
type InterestFilter struct {
	prefix      *Name
	regexFilter string
	regex       *NameRegex
}

// NewInterestFilter creates a filter matching every name under prefix.
func NewInterestFilter(prefix *Name) *InterestFilter {
	return &InterestFilter{prefix: prefix.DeepCopy()}
}

// NewInterestFilterWithRegex creates a filter matching names under prefix whose remaining
// components match regexFilter in full. For example, prefix /hello with regex <world><>+
// matches /hello/world/x but not /hello/world.
func NewInterestFilterWithRegex(prefix *Name, regexFilter string) (*InterestFilter, error) {
	pattern := regexFilter
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}
	regex, err := CompileNameRegex(pattern)
	if err != nil {
		return nil, err
	}
	return &InterestFilter{prefix: prefix.DeepCopy(), regexFilter: regexFilter, regex: regex}, nil
}

// DoesMatch returns whether name matches this filter.
func (f *InterestFilter) DoesMatch(name *Name) bool {
	if name.Size() < f.prefix.Size() || !f.prefix.PrefixOf(name) {
		return false
	}
	if f.regex == nil {
		return true
	}
	return f.regex.Match(name.SubName(f.prefix.Size(), -1))
}

// Prefix returns the filter prefix.
func (f *InterestFilter) Prefix() *Name {
	return f.prefix
}

// HasRegexFilter returns whether the filter has a regex.
func (f *InterestFilter) HasRegexFilter() bool {
	return f.regex != nil
}

// RegexFilter returns the regex given at construction, or "".
func (f *InterestFilter) RegexFilter() string {
	return f.regexFilter
}

func (f *InterestFilter) String() string {
	if f.regex == nil {
		return f.prefix.String()
	}
	return f.prefix.String() + " " + f.regexFilter
}
