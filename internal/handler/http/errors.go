// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// errRequestTooLarge is reported when an upload exceeds the configured
// maximum request body size.
var errRequestTooLarge = errors.New("request body too large")

// errCrossOriginRequest is reported for state-changing requests that
// originate from a foreign site.
var errCrossOriginRequest = errors.New("cross-origin request rejected")
