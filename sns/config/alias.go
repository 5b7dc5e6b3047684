package config

import (
	"fmt"

	"github.com/oasisprotocol/sns-launch/common/principal"
)

// AliasResolver resolves principal references in a launch document.
//
// A reference is first looked up in the alias table, by name and then by
// email, and only parsed as a textual principal when no alias matches.
type AliasResolver struct {
	byName  map[string]principal.Principal
	byEmail map[string]principal.Principal
}

// NewAliasResolver builds a resolver from the document alias table.
//
// Aliases that fail to parse or that reuse a name or email are reported as
// defects and left out of the table.
func NewAliasResolver(aliases []PrincipalAlias) (*AliasResolver, []string) {
	r := &AliasResolver{
		byName:  make(map[string]principal.Principal),
		byEmail: make(map[string]principal.Principal),
	}

	var defects []string
	for _, alias := range aliases {
		id, err := principal.Parse(alias.ID)
		if err != nil {
			defects = append(defects, fmt.Sprintf("Unable to parse PrincipalId (%q) in Principals. Reason: %v", alias.ID, err))
			continue
		}
		if alias.Name != nil {
			if _, dup := r.byName[*alias.Name]; dup {
				defects = append(defects, fmt.Sprintf("Duplicate principal alias name %q in Principals.", *alias.Name))
			} else {
				r.byName[*alias.Name] = id
			}
		}
		if alias.Email != nil {
			if _, dup := r.byEmail[*alias.Email]; dup {
				defects = append(defects, fmt.Sprintf("Duplicate principal alias email %q in Principals.", *alias.Email))
			} else {
				r.byEmail[*alias.Email] = id
			}
		}
	}
	return r, defects
}

// Resolve resolves a single principal reference.
func (r *AliasResolver) Resolve(raw string) (principal.Principal, error) {
	if id, ok := r.byName[raw]; ok {
		return id, nil
	}
	if id, ok := r.byEmail[raw]; ok {
		return id, nil
	}
	return principal.Parse(raw)
}

// Unalias resolves every reference of the named document field. References
// that fail to resolve are returned as defects.
func (r *AliasResolver) Unalias(field string, raws []string) ([]principal.Principal, []string) {
	var (
		ids     []principal.Principal
		defects []string
	)
	for _, raw := range raws {
		id, err := r.Resolve(raw)
		if err != nil {
			defects = append(defects, fmt.Sprintf("Unable to parse PrincipalId (%q) in %s. Reason: %v", raw, field, err))
			continue
		}
		ids = append(ids, id)
	}
	return ids, defects
}
