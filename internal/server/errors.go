// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoTransportConfigured is returned by NewServer when the configuration
// enables no listen address, so there is nothing to run.
var errNoTransportConfigured = errors.New("no transport servers configured")
