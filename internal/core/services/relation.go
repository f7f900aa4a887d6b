package services

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/logger"
	"github.com/custodia-labs/hookenv/internal/serializable"
)

// Relation data keys with special meaning.
const (
	UnitKey           = "__unit__"
	RelationIDKey     = "__relid__"
	PrivateAddressKey = "private-address"
	PublicAddressKey  = "public-address"

	// listSuffix marks settings holding whitespace separated lists.
	listSuffix = "-list"

	// exitNotInRelation is relation-get's exit status outside a relation.
	exitNotInRelation = 2
)

// RelationGet reads relation settings. An empty attribute returns every
// setting of unit; an empty unit or rid means the current hook's. Outside
// a relation context the result is nil.
func (h *HookEnv) RelationGet(ctx context.Context, attribute, unit, rid string) (any, error) {
	return cached(h.cache, cacheKey("relation-get", attribute, unit, rid), func() (any, error) {
		args := []string{"--format=json"}
		if rid != "" {
			args = append(args, "-r", rid)
		}
		if attribute != "" {
			args = append(args, attribute)
		} else {
			args = append(args, "-")
		}
		if unit != "" {
			args = append(args, unit)
		}

		out, err := h.runner.Output(ctx, "relation-get", args...)
		if err != nil {
			if domain.ExitCode(err) == exitNotInRelation {
				return nil, nil
			}
			return nil, err
		}
		return decodeJSON(out)
	})
}

// relationSettings returns the settings of unit on rid as a mapping.
func (h *HookEnv) relationSettings(ctx context.Context, unit, rid string) (map[string]any, error) {
	raw, err := h.RelationGet(ctx, "", unit, rid)
	if err != nil {
		return nil, err
	}
	switch m := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return maps.Clone(m), nil
	default:
		return nil, fmt.Errorf("%w: relation settings for %s are %T", domain.ErrInvalidInput, unit, raw)
	}
}

// RelationSet publishes settings for the local unit. A nil value unsets
// the key. Cached reads of the local unit's settings are dropped.
func (h *HookEnv) RelationSet(ctx context.Context, relationID string, settings map[string]any) error {
	args := []string{}
	if relationID != "" {
		args = append(args, "-r", relationID)
	}

	var err error
	if h.relationSetAcceptsFile(ctx) {
		err = h.relationSetFile(ctx, args, settings)
	} else {
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if settings[k] == nil {
				args = append(args, k+"=")
			} else {
				args = append(args, k+"="+valueString(settings[k]))
			}
		}
		err = h.runner.Run(ctx, "relation-set", args...)
	}
	if err != nil {
		return err
	}

	if unit := h.LocalUnit(); unit != "" {
		n := h.cache.Flush(unit)
		logger.Debug("relation-set flushed %d cached entries for %s", n, unit)
	}
	return nil
}

// relationSetFile passes settings to relation-set as a YAML document.
func (h *HookEnv) relationSetFile(ctx context.Context, args []string, settings map[string]any) error {
	doc := make(map[string]any, len(settings))
	for k, v := range settings {
		if v == nil {
			doc[k] = nil
			continue
		}
		doc[k] = valueString(v)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding relation settings: %w", err)
	}

	path := filepath.Join(os.TempDir(), "relation-set-"+uuid.NewString()+".yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing relation settings: %w", err)
	}
	defer os.Remove(path)

	return h.runner.Run(ctx, "relation-set", append(args, "--file", path)...)
}

// relationSetAcceptsFile reports whether relation-set supports --file.
// The answer is remembered for the life of the HookEnv.
func (h *HookEnv) relationSetAcceptsFile(ctx context.Context) bool {
	if h.acceptsFile != nil {
		return *h.acceptsFile
	}
	out, err := h.runner.Output(ctx, "relation-set", "--help")
	accepts := err == nil && strings.Contains(string(out), "--file")
	h.acceptsFile = &accepts
	return accepts
}

// RelationIDs returns the ids of relations named reltype. An empty reltype
// means the current hook's relation; outside a relation hook the result
// is empty.
func (h *HookEnv) RelationIDs(ctx context.Context, reltype string) ([]string, error) {
	if reltype == "" {
		reltype = h.RelationType()
	}
	if reltype == "" {
		return []string{}, nil
	}
	return cached(h.cache, cacheKey("relation-ids", reltype), func() ([]string, error) {
		out, err := h.runner.Output(ctx, "relation-ids", "--format=json", reltype)
		if err != nil {
			return nil, err
		}
		return decodeStrings(out)
	})
}

// RelatedUnits returns the remote units on rid, the current relation by default.
func (h *HookEnv) RelatedUnits(ctx context.Context, rid string) ([]string, error) {
	if rid == "" {
		rid = h.RelationID()
	}
	return cached(h.cache, cacheKey("relation-list", rid), func() ([]string, error) {
		args := []string{"--format=json"}
		if rid != "" {
			args = append(args, "-r", rid)
		}
		out, err := h.runner.Output(ctx, "relation-list", args...)
		if err != nil {
			return nil, err
		}
		return decodeStrings(out)
	})
}

// RelationForUnit returns the settings of unit, the remote unit by
// default. Keys ending in -list are split on whitespace and the unit name
// is stored under __unit__.
func (h *HookEnv) RelationForUnit(ctx context.Context, unit, rid string) (serializable.Serializable, error) {
	if unit == "" {
		unit = h.RemoteUnit()
	}
	settings, err := h.relationSettings(ctx, unit, rid)
	if err != nil {
		return serializable.Serializable{}, err
	}

	rel := serializable.New(nil)
	for k, v := range settings {
		if s, ok := v.(string); ok && strings.HasSuffix(k, listSuffix) {
			rel.Data()[k] = strings.Fields(s)
			continue
		}
		rel.Data()[k] = v
	}
	rel.Data()[UnitKey] = unit
	return rel, nil
}

// RelationsForID returns the settings of every unit on rid, the current
// relation by default, tagged with __relid__.
func (h *HookEnv) RelationsForID(ctx context.Context, rid string) ([]serializable.Serializable, error) {
	if rid == "" {
		rid = h.RelationID()
	}
	units, err := h.RelatedUnits(ctx, rid)
	if err != nil {
		return nil, err
	}

	rels := make([]serializable.Serializable, 0, len(units))
	for _, unit := range units {
		rel, err := h.RelationForUnit(ctx, unit, rid)
		if err != nil {
			return nil, err
		}
		rel.Data()[RelationIDKey] = rid
		rels = append(rels, rel)
	}
	return rels, nil
}

// RelationsOfType returns the settings of every unit on every relation
// named reltype, the current relation type by default.
func (h *HookEnv) RelationsOfType(ctx context.Context, reltype string) ([]serializable.Serializable, error) {
	if reltype == "" {
		reltype = h.RelationType()
	}
	ids, err := h.RelationIDs(ctx, reltype)
	if err != nil {
		return nil, err
	}

	var rels []serializable.Serializable
	for _, rid := range ids {
		forID, err := h.RelationsForID(ctx, rid)
		if err != nil {
			return nil, err
		}
		rels = append(rels, forID...)
	}
	return rels, nil
}

// Relations returns the settings of every unit, local unit included, on
// every relation declared in metadata, keyed by type, id and unit.
func (h *HookEnv) Relations(ctx context.Context) (map[string]map[string]map[string]map[string]any, error) {
	type relationMap = map[string]map[string]map[string]map[string]any

	return cached(h.cache, cacheKey("relations"), func() (relationMap, error) {
		types, err := h.RelationTypes()
		if err != nil {
			return nil, err
		}

		rels := make(relationMap, len(types))
		for _, reltype := range types {
			ids, err := h.RelationIDs(ctx, reltype)
			if err != nil {
				return nil, err
			}
			byID := make(map[string]map[string]map[string]any, len(ids))
			for _, rid := range ids {
				related, err := h.RelatedUnits(ctx, rid)
				if err != nil {
					return nil, err
				}
				units := append([]string{h.LocalUnit()}, related...)
				byUnit := make(map[string]map[string]any, len(units))
				for _, unit := range units {
					settings, err := h.relationSettings(ctx, unit, rid)
					if err != nil {
						return nil, err
					}
					byUnit[unit] = settings
				}
				byID[rid] = byUnit
			}
			rels[reltype] = byID
		}
		return rels, nil
	})
}

// RelationClear unsets every local setting on rid except the unit addresses.
func (h *HookEnv) RelationClear(ctx context.Context, rid string) error {
	settings, err := h.relationSettings(ctx, h.LocalUnit(), rid)
	if err != nil {
		return err
	}

	cleared := make(map[string]any, len(settings))
	for k, v := range settings {
		if k == PrivateAddressKey || k == PublicAddressKey {
			cleared[k] = v
			continue
		}
		cleared[k] = nil
	}
	return h.RelationSet(ctx, rid, cleared)
}

// IsRelationMade reports whether any unit on a relation named relation has
// published all keys. Keys default to private-address.
func (h *HookEnv) IsRelationMade(ctx context.Context, relation string, keys ...string) (bool, error) {
	if len(keys) == 0 {
		keys = []string{PrivateAddressKey}
	}

	ids, err := h.RelationIDs(ctx, relation)
	if err != nil {
		return false, err
	}
	for _, rid := range ids {
		units, err := h.RelatedUnits(ctx, rid)
		if err != nil {
			return false, err
		}
		for _, unit := range units {
			complete, err := h.unitHasKeys(ctx, unit, rid, keys)
			if err != nil {
				return false, err
			}
			if complete {
				return true, nil
			}
		}
	}
	return false, nil
}

func (h *HookEnv) unitHasKeys(ctx context.Context, unit, rid string, keys []string) (bool, error) {
	for _, k := range keys {
		v, err := h.RelationGet(ctx, k, unit, rid)
		if err != nil {
			return false, err
		}
		if v == nil {
			return false, nil
		}
	}
	return true, nil
}
