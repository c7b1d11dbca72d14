package service

import "strings"

// FAQ topic keys.
const (
	TopicShippingInfo = "shipping_info"
	TopicReturnPolicy = "return_policy"
	TopicProductCare  = "product_care"
	TopicWarranty     = "warranty"
	TopicPillowCare   = "pillow_care"
	TopicJewelryCare  = "jewelry_care"
	TopicDiffuserCare = "diffuser_care"
	TopicSizingGuide  = "sizing_guide"
)

var baseFAQResponses = map[string]string{
	TopicShippingInfo: "We offer standard shipping across India, which typically takes 3-5 business days. International shipping is planned for the future!",
	TopicReturnPolicy: "We have a 30-day return policy. Items must be in their original condition with tags attached. Return shipping for defective items is covered by us.",
	TopicProductCare:  "Please follow the care label that comes with each product. Most items do best when cleaned gently and stored in a cool, dry place away from direct sunlight.",
	TopicWarranty:     "All our products are covered by a 6-month warranty against manufacturing defects. Share your order number and a photo of the issue with us to start a claim.",
}

// categoryFAQ adds a topic when any category name contains one of the keywords.
var categoryFAQ = []struct {
	keywords []string
	topic    string
	answer   string
}{
	{
		keywords: []string{"bedding", "pillow"},
		topic:    TopicPillowCare,
		answer:   "Fluff your pillow daily and air it out in the sun once a month. Removable covers are machine washable on a gentle cycle; spot-clean memory foam cores with mild soap and let them dry completely.",
	},
	{
		keywords: []string{"jewelry", "jewellery", "earring", "necklace"},
		topic:    TopicJewelryCare,
		answer:   "For our jewelry, we recommend wiping it with a soft, dry cloth after use and storing it in the provided box. Avoid contact with water and perfume to ensure the 1-gram gold plating lasts for 1-2 years.",
	},
	{
		keywords: []string{"wellness", "aromatherapy", "diffuser"},
		topic:    TopicDiffuserCare,
		answer:   "Empty and wipe your diffuser after each use, and clean it weekly with a little white vinegar and water. Use only pure essential oils and never run it without water.",
	},
	{
		keywords: []string{"apparel", "clothing"},
		topic:    TopicSizingGuide,
		answer:   "Each product page has a size chart. If you are between sizes we recommend sizing up, and exchanges for a different size are free within 30 days.",
	},
}

// buildFAQResponses is deterministic for a given category set.
func buildFAQResponses(categories []string) map[string]string {
	faq := make(map[string]string, len(baseFAQResponses)+len(categoryFAQ))
	for topic, answer := range baseFAQResponses {
		faq[topic] = answer
	}

	for _, rule := range categoryFAQ {
		if categoriesMention(categories, rule.keywords) {
			faq[rule.topic] = rule.answer
		}
	}
	return faq
}

func categoriesMention(categories, keywords []string) bool {
	for _, category := range categories {
		lower := strings.ToLower(category)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
