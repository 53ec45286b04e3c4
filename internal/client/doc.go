// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

// Package client implements the client application runtime.
//
// It wires the local replica, the remote transport, and the background
// synchronization services into a single process lifecycle with graceful
// shutdown.
package client
