// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewRelayHandlers when the server
// config names neither an HTTP nor a gRPC address, and by NewDeviceHandlers
// when the control API address is empty.
var errNoHandlersAreCreated = errors.New("no handlers are created: no listen address configured")
