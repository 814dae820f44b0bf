// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import "fmt"

// All returns every kind this repo knows how to sync, in a fixed order
// that already satisfies every [Kind.DependsOn] edge (§4.12, §9 — column-set
// authority and ordering are this package's job, not a per-kind decision).
func All() []Kind {
	return []Kind{
		Language, Country, Genre, Keyword,
		Collection, Company, Network,
		Person,
		Movie, Series,
	}
}

// ByName looks up a kind by its registry name. ok is false for an unknown
// name.
func ByName(name string) (Kind, bool) {
	for _, k := range All() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// ValidateOrder panics-free sanity check that every kind's DependsOn names
// refer to a kind that appears earlier in [All]. Run from an init-time test,
// not production code, since a violation here is a registry bug, not a
// runtime condition.
func ValidateOrder() error {
	seen := make(map[string]bool)
	for _, k := range All() {
		for _, dep := range k.DependsOn {
			if !seen[dep] {
				return fmt.Errorf("registry: kind %q depends on %q, which is not ordered before it", k.Name, dep)
			}
		}
		seen[k.Name] = true
	}
	return nil
}
