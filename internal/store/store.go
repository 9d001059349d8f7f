// Package store is the JSON data store of tool records. The store is loaded
// once, passed around as an explicit dependency, and treated as read-only on
// the serving path; only offline maintenance commands write it back.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/pricing"
)

// Store holds the loaded tool records in file order
type Store struct {
	path  string
	tools []*model.Tool
}

// Load reads the tools file at path
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tools file: %w", err)
	}
	var tools []*model.Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("parse tools file: %w", err)
	}
	return &Store{path: path, tools: tools}, nil
}

// Tool returns the tool with the given slug, or nil if absent
func (s *Store) Tool(slug string) *model.Tool {
	for _, t := range s.tools {
		if t.Slug == slug {
			return t
		}
	}
	return nil
}

// All returns every tool in file order. Callers must not mutate the slice.
func (s *Store) All() []*model.Tool {
	return s.tools
}

// Len returns the number of tools
func (s *Store) Len() int {
	return len(s.tools)
}

// Alternative pairs a candidate tool with the tags it shares with the
// current one.
type Alternative struct {
	Tool       *model.Tool
	SharedTags []string
}

// BestAlternatives ranks the other tools by shared-tag count against current
// and returns the top count. Tools whose slugs appear in promoted are forced
// to the front regardless of overlap; among themselves they still rank by
// shared tags. Ties keep file order.
func (s *Store) BestAlternatives(current *model.Tool, promoted []string, count int) []Alternative {
	promotedSet := make(map[string]bool, len(promoted))
	for _, slug := range promoted {
		promotedSet[strings.ToLower(slug)] = true
	}

	var front, rest []Alternative
	for _, candidate := range s.tools {
		if candidate.ID == current.ID {
			continue
		}
		alt := Alternative{Tool: candidate, SharedTags: sharedTags(current, candidate)}
		if promotedSet[strings.ToLower(candidate.Slug)] {
			front = append(front, alt)
		} else {
			rest = append(rest, alt)
		}
	}
	sort.SliceStable(front, func(i, j int) bool {
		return len(front[i].SharedTags) > len(front[j].SharedTags)
	})
	sort.SliceStable(rest, func(i, j int) bool {
		return len(rest[i].SharedTags) > len(rest[j].SharedTags)
	})

	ranked := append(front, rest...)
	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}

func sharedTags(a, b *model.Tool) []string {
	have := make(map[string]bool, len(a.Tags))
	for _, tag := range a.Tags {
		have[tag] = true
	}
	var shared []string
	for _, tag := range b.Tags {
		if have[tag] {
			shared = append(shared, tag)
		}
	}
	return shared
}

// SyncResult reports what a starting-price sync changed
type SyncResult struct {
	Updated []string // tool names whose starting_price changed
	Skipped []string // tool names with no paid plan
}

// SyncStartingPrices rewrites each tool's starting_price from its first paid
// plan so listing cards and detail pages quote the same price. Tools without
// a paid plan keep their current value.
func (s *Store) SyncStartingPrices() SyncResult {
	var result SyncResult
	for _, tool := range s.tools {
		if _, ok := pricing.FirstPaidPlan(tool.PricingPlans); !ok {
			result.Skipped = append(result.Skipped, tool.Name)
			continue
		}
		synced := pricing.StartingPrice(tool.PricingPlans)
		if tool.StartingPrice != synced {
			tool.StartingPrice = synced
			result.Updated = append(result.Updated, tool.Name)
		}
	}
	return result
}

// Save writes the tool records back to the file they were loaded from
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.tools, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tools: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write tools file: %w", err)
	}
	return nil
}
