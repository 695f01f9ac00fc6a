// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when the handlers and the configured
// addresses leave neither the HTTP nor the gRPC transport enabled.
var errNoServersAreCreated = errors.New("no servers are created: set an HTTP or gRPC address")
