/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/mgmt"
)

// OnRegisterFailed is called when the forwarder did not accept a prefix registration.
type OnRegisterFailed func(prefix *ndn.Name)

// OnRegisterSuccess is called once the forwarder has registered a prefix.
type OnRegisterSuccess func(prefix *ndn.Name, registeredPrefixID uint64)

// RegisterOptions holds the optional fields of a prefix registration.
type RegisterOptions struct {
	// ForwardingFlags sets the route flags and origin. Nil uses the forwarder defaults.
	ForwardingFlags *mgmt.RegistrationOptions
	// Cost is the route cost. Nil uses the forwarder default.
	Cost *uint64
}

// RegisterPrefix asks the forwarder to route Interests under prefix to this face and returns
// the registered prefix ID. Once the forwarder accepts, an interest filter for prefix is added
// if onInterest is not nil, and onRegisterSuccess is called. If the forwarder refuses, the
// response cannot be decoded, or the command times out, onRegisterFailed is called.
func (f *Face) RegisterPrefix(prefix *ndn.Name, onInterest OnInterest, onRegisterFailed OnRegisterFailed,
	onRegisterSuccess OnRegisterSuccess, opts *RegisterOptions) (uint64, error) {
	id := f.nextEntryID()
	prefix = prefix.DeepCopy()

	params := mgmt.NewControlParameters(prefix)
	if opts != nil {
		if opts.ForwardingFlags != nil {
			params.SetRegistrationOptions(opts.ForwardingFlags)
		}
		params.Cost = opts.Cost
	}

	failed := func() {
		if onRegisterFailed != nil {
			core.SafeCall(f, "onRegisterFailed", func() {
				onRegisterFailed(prefix)
			})
		}
	}
	succeeded := func(response *mgmt.ControlResponse) {
		var filterID uint64
		if onInterest != nil {
			filterID = f.nextEntryID()
			f.setInterestFilter(filterID, ndn.NewInterestFilter(prefix), onInterest)
		}
		if !f.prefixes.Add(id, prefix, filterID) {
			// RemoveRegisteredPrefix was called while the command was outstanding
			if filterID != 0 {
				f.filters.UnsetInterestFilter(filterID)
			}
			return
		}
		core.LogInfo(f, "Registered prefix ", prefix, " as ", id)
		if onRegisterSuccess != nil {
			core.SafeCall(f, "onRegisterSuccess", func() {
				onRegisterSuccess(prefix, id)
			})
		}
	}

	err := f.runWhenOpened(func() {
		f.sendCommand("register", params, succeeded, failed)
	}, failed)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveRegisteredPrefix removes the registered prefix and its interest filter, and asks the
// forwarder to unregister it. If the registration is still in progress, it is dropped when the
// forwarder answers.
func (f *Face) RemoveRegisteredPrefix(id uint64) {
	entry := f.prefixes.RemoveRegisteredPrefix(id)
	if entry == nil {
		return
	}

	params := mgmt.NewControlParameters(entry.Prefix())
	err := f.runWhenOpened(func() {
		f.sendCommand("unregister", params,
			func(*mgmt.ControlResponse) {
				core.LogInfo(f, "Unregistered prefix ", entry.Prefix())
			},
			func() {
				core.LogWarn(f, "Unable to unregister prefix ", entry.Prefix())
			})
	}, nil)
	if err != nil {
		core.LogDebug(f, "Not unregistering prefix ", entry.Prefix(), ": ", err)
	}
}

// sendCommand sends a signed rib/<verb> command Interest. Only a ControlResponse with status
// 200 counts as success.
func (f *Face) sendCommand(verb string, params *mgmt.ControlParameters,
	onSuccess func(response *mgmt.ControlResponse), onFailure func()) {
	isLocal, err := f.transport.IsLocal(f.info)
	if err != nil {
		core.LogWarn(f, "Unable to determine whether the forwarder is local: ", err)
		onFailure()
		return
	}

	commandName := ndn.NewName()
	if isLocal {
		commandName.AppendString("localhost")
	} else {
		commandName.AppendString("localhop")
	}
	commandName.AppendString("nfd").AppendString("rib").AppendString(verb)
	commandName.Append(ndn.NewGenericNameComponent(f.wireFormat.EncodeControlParameters(params)))

	command := ndn.NewInterest(commandName)
	command.SetLifetime(f.commandTimeout)
	if err := f.commandGenerator.Generate(command, f.signer); err != nil {
		core.LogWarn(f, "Unable to sign rib/", verb, " command: ", err)
		onFailure()
		return
	}

	onData := func(_ *ndn.Interest, data *ndn.Data) {
		response, err := f.wireFormat.DecodeControlResponse(data.Content())
		if err != nil {
			core.LogWarn(f, "Unable to decode rib/", verb, " response: ", err)
			onFailure()
			return
		}
		if !response.IsSuccess() {
			core.LogWarn(f, "rib/", verb, " for ", params.Name, " refused: ", response)
			onFailure()
			return
		}
		onSuccess(response)
	}
	onTimeout := func(*ndn.Interest) {
		core.LogWarn(f, "rib/", verb, " for ", params.Name, " timed out")
		onFailure()
	}
	onNack := func(_ *ndn.Interest, nack *ndn.NetworkNack) {
		core.LogWarn(f, "rib/", verb, " for ", params.Name, " was Nacked: ", nack)
		onFailure()
	}

	core.LogDebug(f, "Sending rib/", verb, " command for ", params.Name)
	if _, err := f.ExpressInterest(command, onData, onTimeout, onNack); err != nil {
		core.LogWarn(f, "Unable to send rib/", verb, " command: ", err)
		onFailure()
	}
}
