// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package langtag validates and filters the BCP-47-ish locale tags used by
the extra_languages configuration option (SPEC_FULL.md E3.2), grounded on
original_source/sync_tmdb/models/extra_languages.py's fixed allow-list of
supplementary translation locales.

Uses golang.org/x/text/language for tag parsing instead of a hand-rolled
"two letters, dash, two letters" string check, the same dependency yomira
carries for its pkg/slug normalization.
*/
package langtag

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Default is always retained regardless of configuration.
const Default = "en-US"

// Allowlist is a validated, deduplicated set of locale tags: Default plus
// whatever extra tags configuration supplies.
type Allowlist struct {
	tags map[string]struct{}
}

// NewAllowlist parses and validates extra, returning an error naming the
// first unparseable tag — an unsupported tag is a startup configuration
// error, not a runtime one.
func NewAllowlist(extra []string) (Allowlist, error) {
	tags := map[string]struct{}{strings.ToLower(Default): {}}
	for _, raw := range extra {
		tag, err := language.Parse(raw)
		if err != nil {
			return Allowlist{}, fmt.Errorf("langtag: invalid extra_languages entry %q: %w", raw, err)
		}
		tags[strings.ToLower(tag.String())] = struct{}{}
	}
	return Allowlist{tags: tags}, nil
}

// Allows reports whether the iso_639_1-iso_3166_1 pair (TMDB's translation
// locale shape) is in the allow-list.
func (a Allowlist) Allows(iso6391, iso31661 string) bool {
	if iso6391 == "" {
		return false
	}
	key := strings.ToLower(iso6391)
	if iso31661 != "" {
		key += "-" + strings.ToLower(iso31661)
	}
	_, ok := a.tags[key]
	return ok
}
