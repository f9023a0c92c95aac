/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package textstats provides pure, deterministic text measurements and
// section extraction for Portuguese-language essays.
//
// The functions in this package never call external services. They feed
// prompt assembly (word/sentence/paragraph statistics, extracted
// introduction, body and conclusion) and light heuristics such as
// locating the intervention proposal inside a conclusion paragraph.
package textstats
