// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for the ibis runner. It
// handles flag parsing, error handling, and output handling.
package cmd
