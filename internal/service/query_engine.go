package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"catalog-assistant/internal/models"
)

// Intent names, in evaluation order.
const (
	IntentUntrained     = "untrained"
	IntentPriceLimit    = "price_limit"
	IntentProductSearch = "product_search"
	IntentFAQ           = "faq"
	IntentGreeting      = "greeting"
	IntentHelp          = "help"
	IntentGeneral       = "general"
)

const maxSuggestedProducts = 3

const (
	untrainedMessage = "I'm still getting to know our products. Training is pending, so please check back in a little while."
	greetingMessage  = "Hello! Welcome to our store. I can help you find products, check prices, or answer questions about shipping, returns and product care. What are you looking for today?"
	helpMessage      = "I can help you with finding products (try \"show me pillows\"), products within a budget (try \"anything under 50\"), shipping information, our return policy, warranty and product care tips. What would you like to know?"
	generalMessage   = "I'm not sure I understood that. Could you tell me a bit more about what you're looking for? You can ask about products, prices, shipping or returns."
)

var priceLimitPattern = regexp.MustCompile(`\b(?:under|below|less\s+than)\s*[$₹€£]?\s*(\d+)`)

var (
	productTriggerWords = []string{
		"product", "show", "find", "looking for", "buy", "recommend", "suggest", "search",
		"pillow", "blanket", "mattress", "diffuser", "earring", "necklace", "bracelet", "jewel", "gift",
	}
	greetingWords = []string{"hello", "hi", "hey"}
	helpWords     = []string{"help", "assist"}
)

// faqGroups map keyword groups to topics. Within a group the first topic
// present in the knowledge base answers; specialized topics come first.
var faqGroups = []struct {
	keywords []string
	topics   func(text string) []string
}{
	{
		keywords: []string{"shipping", "delivery", "deliver"},
		topics:   func(string) []string { return []string{TopicShippingInfo} },
	},
	{
		keywords: []string{"return", "refund"},
		topics:   func(string) []string { return []string{TopicReturnPolicy} },
	},
	{
		keywords: []string{"care", "wash", "clean"},
		topics: func(text string) []string {
			var topics []string
			if strings.Contains(text, "pillow") {
				topics = append(topics, TopicPillowCare)
			}
			if containsAny(text, []string{"jewel", "earring", "necklace"}) {
				topics = append(topics, TopicJewelryCare)
			}
			if strings.Contains(text, "diffuser") {
				topics = append(topics, TopicDiffuserCare)
			}
			return append(topics, TopicProductCare)
		},
	},
	{
		keywords: []string{"warranty", "guarantee"},
		topics:   func(string) []string { return []string{TopicWarranty} },
	},
	{
		keywords: []string{"sizing", "size chart"},
		topics:   func(string) []string { return []string{TopicSizingGuide} },
	},
}

// chatQuery is one message prepared for classification.
type chatQuery struct {
	text          string
	kb            *models.KnowledgeBase
	priceLimit    int
	hasPriceLimit bool
}

func newChatQuery(message string, kb *models.KnowledgeBase) *chatQuery {
	q := &chatQuery{
		text: strings.ToLower(strings.TrimSpace(message)),
		kb:   kb,
	}
	if m := priceLimitPattern.FindStringSubmatch(q.text); m != nil {
		limit, err := strconv.Atoi(m[1])
		if errors.Is(err, strconv.ErrRange) {
			limit, err = math.MaxInt, nil
		}
		if err == nil {
			q.priceLimit = limit
			q.hasPriceLimit = true
		}
	}
	return q
}

// intentRule pairs a predicate with its handler. A handler returning false
// passes the message on to the next rule.
type intentRule struct {
	name   string
	match  func(q *chatQuery) bool
	handle func(q *chatQuery) (models.ChatResponse, bool)
}

// QueryEngine classifies chat messages against a knowledge base. The first
// matching rule answers, so rule order is the priority contract.
type QueryEngine struct {
	rules []intentRule
}

func NewQueryEngine() *QueryEngine {
	return &QueryEngine{
		rules: []intentRule{
			{name: IntentUntrained, match: isUntrained, handle: answerUntrained},
			{name: IntentPriceLimit, match: hasPriceLimit, handle: answerPriceLimit},
			{name: IntentProductSearch, match: mentionsProducts, handle: answerProductSearch},
			{name: IntentFAQ, match: mentionsFAQTopic, handle: answerFAQ},
			{name: IntentGreeting, match: isGreeting, handle: fixedAnswer(models.ResponseTypeGreeting, greetingMessage)},
			{name: IntentHelp, match: asksForHelp, handle: fixedAnswer(models.ResponseTypeHelp, helpMessage)},
		},
	}
}

// Answer always returns a well-formed response and never mutates kb.
func (e *QueryEngine) Answer(message string, kb *models.KnowledgeBase) models.ChatResponse {
	_, resp := e.classify(message, kb)
	return resp
}

// Classify reports which intent answers message.
func (e *QueryEngine) Classify(message string, kb *models.KnowledgeBase) string {
	intent, _ := e.classify(message, kb)
	return intent
}

func (e *QueryEngine) classify(message string, kb *models.KnowledgeBase) (string, models.ChatResponse) {
	q := newChatQuery(message, kb)
	for _, rule := range e.rules {
		if !rule.match(q) {
			continue
		}
		if resp, ok := rule.handle(q); ok {
			return rule.name, resp
		}
	}
	return IntentGeneral, models.ChatResponse{Message: generalMessage, Type: models.ResponseTypeGeneral}
}

func isUntrained(q *chatQuery) bool {
	return !q.kb.IsTrained()
}

func answerUntrained(*chatQuery) (models.ChatResponse, bool) {
	return models.ChatResponse{Message: untrainedMessage, Type: models.ResponseTypeError}, true
}

func hasPriceLimit(q *chatQuery) bool {
	return q.hasPriceLimit
}

// answerPriceLimit is terminal: with no product in budget it reports that
// instead of falling back to keyword search.
func answerPriceLimit(q *chatQuery) (models.ChatResponse, bool) {
	var matches []models.CatalogEntry
	for _, e := range q.kb.ProductCatalog.Entries() {
		if withinLimit(e, q.priceLimit) {
			matches = append(matches, e)
		}
	}

	if len(matches) == 0 {
		return models.ChatResponse{
			Message: fmt.Sprintf("Sorry, I couldn't find any products under %d. Try a higher budget or browse our full collection.", q.priceLimit),
			Type:    models.ResponseTypeError,
		}, true
	}
	return productResponse(fmt.Sprintf("Here are some great options under %d:", q.priceLimit), matches), true
}

func withinLimit(e models.CatalogEntry, limit int) bool {
	return e.Price.Valid && e.Price.Amount <= float64(limit)
}

func mentionsProducts(q *chatQuery) bool {
	if containsAny(q.text, productTriggerWords) {
		return true
	}
	for _, category := range q.kb.Categories {
		if c := strings.ToLower(category); c != "" && strings.Contains(q.text, c) {
			return true
		}
	}
	return false
}

func answerProductSearch(q *chatQuery) (models.ChatResponse, bool) {
	tokens := TokenizeKeywords(q.text)
	if len(tokens) == 0 {
		return models.ChatResponse{}, false
	}

	var matches []models.CatalogEntry
	for _, e := range q.kb.ProductCatalog.Entries() {
		if q.hasPriceLimit && !withinLimit(e, q.priceLimit) {
			continue
		}
		title := strings.ToLower(e.Title)
		tags := strings.ToLower(strings.Join(e.Tags, " "))
		for _, token := range tokens {
			if strings.Contains(title, token) || strings.Contains(tags, token) {
				matches = append(matches, e)
				break
			}
		}
	}

	if len(matches) == 0 {
		return models.ChatResponse{}, false
	}
	return productResponse("Here are some products you might like:", matches), true
}

func mentionsFAQTopic(q *chatQuery) bool {
	for _, group := range faqGroups {
		if containsAny(q.text, group.keywords) {
			return true
		}
	}
	return false
}

func answerFAQ(q *chatQuery) (models.ChatResponse, bool) {
	for _, group := range faqGroups {
		if !containsAny(q.text, group.keywords) {
			continue
		}
		for _, topic := range group.topics(q.text) {
			if answer, ok := q.kb.FAQResponses[topic]; ok && answer != "" {
				return models.ChatResponse{Message: answer, Type: models.ResponseTypeFAQ}, true
			}
		}
	}
	return models.ChatResponse{}, false
}

func isGreeting(q *chatQuery) bool {
	return containsAny(q.text, greetingWords)
}

func asksForHelp(q *chatQuery) bool {
	return containsAny(q.text, helpWords)
}

func fixedAnswer(kind models.ResponseType, message string) func(*chatQuery) (models.ChatResponse, bool) {
	return func(*chatQuery) (models.ChatResponse, bool) {
		return models.ChatResponse{Message: message, Type: kind}, true
	}
}

// productResponse lists at most three entries, both as structured products
// and as numbered lines for text-only clients.
func productResponse(header string, entries []models.CatalogEntry) models.ChatResponse {
	if len(entries) > maxSuggestedProducts {
		entries = entries[:maxSuggestedProducts]
	}

	var builder strings.Builder
	builder.WriteString(header)
	products := make([]models.ProductSuggestion, 0, len(entries))
	for i, e := range entries {
		builder.WriteString(fmt.Sprintf("\n%d. %s - %s", i+1, e.Title, e.Price))
		products = append(products, models.SuggestionFromEntry(e))
	}

	return models.ChatResponse{
		Message:  builder.String(),
		Type:     models.ResponseTypeProductRecommendation,
		Products: products,
	}
}
