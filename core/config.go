/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"math"
	"sync"

	"github.com/pelletier/go-toml"
)

var (
	config     *toml.Tree
	configLock sync.RWMutex
)

// LoadConfig loads the configuration from the specified TOML file.
func LoadConfig(file string) error {
	tree, err := toml.LoadFile(file)
	if err != nil {
		return err
	}
	setConfig(tree)
	return nil
}

// LoadConfigString loads the configuration from a TOML document.
func LoadConfigString(doc string) error {
	tree, err := toml.Load(doc)
	if err != nil {
		return err
	}
	setConfig(tree)
	return nil
}

func setConfig(tree *toml.Tree) {
	configLock.Lock()
	defer configLock.Unlock()
	config = tree
}

func getConfig(key string) interface{} {
	configLock.RLock()
	defer configLock.RUnlock()
	if config == nil {
		return nil
	}
	return config.Get(key)
}

// GetConfigIntDefault returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigIntDefault(key string, def int) int {
	valRaw := getConfig(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(int64)
	if ok && val >= math.MinInt32 && val <= math.MaxInt32 {
		return int(val)
	}
	return def
}

// GetConfigStringDefault returns the string configuration value at the specified key or the specified default value if it does not exist.
func GetConfigStringDefault(key string, def string) string {
	valRaw := getConfig(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(string)
	if ok {
		return val
	}
	return def
}
