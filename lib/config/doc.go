// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the helpdesk
// client.
//
// Configuration comes from a single YAML file specified by:
//   - the HELPDESK_CONFIG environment variable, or
//   - the --config flag passed to the command.
//
// There is no automatic discovery. The one environment override is
// HELPDESK_SERVICE_URL, which sets the ticket service base address:
// the service address is deployment-specific by contract, so it must
// be settable without editing a file.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config
