package service

import "strings"

// featureVocabulary is matched by exact substring containment, in this order.
var featureVocabulary = []string{
	"memory foam",
	"hypoallergenic",
	"machine washable",
	"breathable",
	"ergonomic",
	"waterproof",
	"durable",
	"lightweight",
	"premium",
	"organic",
	"eco-friendly",
	"antibacterial",
	"pressure relief",
	"cooling",
	"warming",
	"comfort",
	"soft",
	"adjustable",
	"portable",
	"handmade",
	"natural",
	"cotton",
	"bamboo",
	"silk",
	"lavender",
	"essential oil",
	"non-toxic",
	"rechargeable",
	"gold plated",
	"anti-tarnish",
	"nickel free",
}

// ExtractFeatures returns the vocabulary terms found in description, in vocabulary order.
func ExtractFeatures(description string) []string {
	text := strings.ToLower(description)
	features := make([]string, 0)
	if text == "" {
		return features
	}
	for _, term := range featureVocabulary {
		if strings.Contains(text, term) {
			features = append(features, term)
		}
	}
	return features
}
