/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

// SafeCall runs an application callback. A panic is logged against module and swallowed,
// so the caller can go on to the next callback.
func SafeCall(module interface{}, callback string, f func()) {
	defer func() {
		if rec := recover(); rec != nil {
			LogError(module, "Error in ", callback, ": ", rec)
		}
	}()
	f()
}
