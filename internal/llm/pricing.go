package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds USD prices per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns the pricing for a model ID, or nil if unknown. IDs
// are normalized first, so "google/gemini-2.5-flash" (OpenRouter),
// "models/gemini-2.5-flash" and dated snapshots such as
// "claude-haiku-4-5-20251001" all resolve.
func LookupCost(modelID string) *ModelCost {
	id := normalizeModelID(modelID)
	for id != "" {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
		// Fall back to the family: "gpt-4o-mini-2024-07-18" -> "gpt-4o-mini".
		cut := strings.LastIndexByte(id, '-')
		if cut < 0 {
			break
		}
		id = id[:cut]
	}
	return nil
}

var snapshotSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2}|latest|preview(-[\w-]+)?)$`)

func normalizeModelID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "models/")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	return snapshotSuffix.ReplaceAllString(id, "")
}

// modelCosts covers the models the providers default to and their close
// siblings. Prices from the vendors' pricing pages, 2026-09.
var modelCosts = map[string]ModelCost{
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},

	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},
	"claude-3-5-haiku":  {0.8, 4},
}
