package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-quote-desk/internal/database"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxToolRounds = 4

// RunAgent answers an admin's question about the quotes, letting the model
// call read-only tools over the database.
func RunAgent(ctx context.Context, userMessage string, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a quotation desk.
Amounts are in Saudi riyals; every quote has 15%% VAT on its subtotal.

RULES:
1. If the user asks about a quote by NUMBER, call 'get_quote' with that number.
2. If the user asks which quotes exist, or about a customer, call 'list_quotes' and read the JSON.
3. If the user asks for totals over a period, call 'get_quote_report'.
4. Answer in the language the user wrote in.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "list_quotes",
					Description: "List the most recent quotes with number, customer, project and totals.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"limit": {Type: genai.TypeInteger, Description: "How many quotes (default 20)"},
						},
					},
				},
				{
					Name:        "get_quote",
					Description: "Get one quote with all its line items by quote number.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"quote_number": {Type: genai.TypeString, Description: "The quote number, e.g. 17"},
						},
						Required: []string{"quote_number"},
					},
				},
				{
					Name:        "get_quote_report",
					Description: "Get the count and summed subtotal, VAT and total of quotes created in a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxToolRounds; round++ {
		call, ok := firstFunctionCall(resp)
		if !ok {
			break
		}
		result, err := ExecuteTool(call.Name, call.Args)
		if err != nil {
			result = map[string]interface{}{"error": err.Error()}
		}
		resp, err = session.SendMessage(ctx, genai.FunctionResponse{Name: call.Name, Response: result})
		if err != nil {
			return "", err
		}
	}

	return printResponse(resp), nil
}

// --- HELPER FUNCTIONS ---

// ExecuteTool runs one of the declared tools against the database.
func ExecuteTool(name string, args map[string]interface{}) (map[string]interface{}, error) {
	switch name {
	case "list_quotes":
		limit := 20
		if v, ok := args["limit"].(float64); ok && v > 0 && v <= 100 {
			limit = int(v)
		}
		return listQuotes(limit)
	case "get_quote":
		number, _ := args["quote_number"].(string)
		if number == "" {
			return nil, errors.New("quote_number is required")
		}
		return getQuote(number)
	case "get_quote_report":
		return quoteReport(args)
	}
	return nil, fmt.Errorf("unknown tool %q", name)
}

type quoteSummary struct {
	Number      string  `json:"quote_number"`
	Customer    string  `json:"customer"`
	Project     string  `json:"project"`
	Items       int     `json:"items"`
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
	CreatedDate string  `json:"created_date"`
}

func listQuotes(limit int) (map[string]interface{}, error) {
	quotes, err := database.ListQuotes(0, limit)
	if err != nil {
		return nil, err
	}
	list := make([]quoteSummary, 0, len(quotes))
	for _, q := range quotes {
		list = append(list, quoteSummary{
			Number:      q.QuoteNumber,
			Customer:    q.Customer.Name,
			Project:     q.ProjectDescription,
			Items:       len(q.Items),
			Subtotal:    q.Subtotal,
			TaxAmount:   q.TaxAmount,
			TotalAmount: q.TotalAmount,
			CreatedDate: q.CreatedDate.Format("2006-01-02"),
		})
	}
	jsonBytes, _ := json.Marshal(list)
	return map[string]interface{}{"quotes": string(jsonBytes)}, nil
}

func getQuote(number string) (map[string]interface{}, error) {
	q, err := database.GetQuoteByNumber(number)
	if errors.Is(err, database.ErrNotFound) {
		return map[string]interface{}{"status": "Quote not found"}, nil
	}
	if err != nil {
		return nil, err
	}
	jsonBytes, _ := json.Marshal(q)
	return map[string]interface{}{"quote": string(jsonBytes)}, nil
}

func quoteReport(args map[string]interface{}) (map[string]interface{}, error) {
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return nil, errors.New("dates must be in YYYY-MM-DD format")
	}
	end = end.Add(24*time.Hour - time.Second)

	report, err := database.GetQuoteReport(start, end)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"count":        report.Count,
		"subtotal":     report.Subtotal,
		"tax_amount":   report.TaxAmount,
		"total_amount": report.TotalAmount,
	}, nil
}

func firstFunctionCall(resp *genai.GenerateContentResponse) (genai.FunctionCall, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return genai.FunctionCall{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			return funcCall, true
		}
	}
	return genai.FunctionCall{}, false
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I could not produce an answer."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
