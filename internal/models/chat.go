package models

type ResponseType string

const (
	ResponseTypeError                 ResponseType = "error"
	ResponseTypeProductRecommendation ResponseType = "product_recommendation"
	ResponseTypeFAQ                   ResponseType = "faq"
	ResponseTypeGreeting              ResponseType = "greeting"
	ResponseTypeHelp                  ResponseType = "help"
	ResponseTypeGeneral               ResponseType = "general"
)

// ProductSuggestion is the slice of a catalog entry shown in a chat reply.
type ProductSuggestion struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Price    Price    `json:"price"`
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
}

func SuggestionFromEntry(e CatalogEntry) ProductSuggestion {
	return ProductSuggestion{
		ID:       e.ID,
		Title:    e.Title,
		Price:    e.Price,
		Category: e.Category,
		Summary:  e.Summary,
		Tags:     e.Tags,
	}
}

type ChatResponse struct {
	Message  string              `json:"message"`
	Type     ResponseType        `json:"type"`
	Products []ProductSuggestion `json:"products,omitempty"`
}
