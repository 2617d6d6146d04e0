// Package ai runs a Gemini-backed assistant over the shop's own data.
// The model never touches the database directly; it calls the three
// read-only tools below and answers from what they return.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func RunAssistant(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a tailoring shop's admin dashboard.

RULES:
1. CUSTOMERS: If the user asks about a customer by name or phone, call 'look_up_customers' and read the JSON to answer. Do NOT ask for an ID.
2. DUES: If the user asks who owes money or about pending payments, call 'list_outstanding_orders'.
3. BILLING: If the user asks for billing totals, revenue or collections for a period, call 'get_billing_report' with the date range.
4. You can only read data. If asked to change anything, tell the user to use the dashboard forms.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "look_up_customers",
					Description: "Get the full customer list. Use this to find ANY customer's ID, name, phone or address.",
				},
				{
					Name:        "list_outstanding_orders",
					Description: "List orders that still have a due amount, with customer name, dress type, due amount and delivery date.",
				},
				{
					Name:        "get_billing_report",
					Description: "Get billed, received and outstanding totals for a date range.",
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

	// A safety-blocked response carries no candidates at all.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return printResponse(resp), nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "look_up_customers":
				return executeCustomerLookup(ctx, session)
			case "list_outstanding_orders":
				return executeOutstandingOrders(ctx, session)
			case "get_billing_report":
				return executeBillingReport(ctx, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

func executeCustomerLookup(ctx context.Context, session *genai.ChatSession) (string, error) {
	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		return "", err
	}

	type simpleCustomer struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	var simpleList []simpleCustomer
	for _, c := range customers {
		simpleList = append(simpleList, simpleCustomer{ID: c.ID, Name: c.Name, Phone: c.Phone})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "look_up_customers",
		Response: map[string]interface{}{"customers": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeOutstandingOrders(ctx context.Context, session *genai.ChatSession) (string, error) {
	type dueRow struct {
		OrderID      uint    `json:"order_id"`
		Customer     string  `json:"customer"`
		DressType    string  `json:"dress_type"`
		Due          float64 `json:"due"`
		DeliveryDate string  `json:"delivery_date"`
	}
	var rows []dueRow
	err := database.DB.Table("orders").
		Select("orders.id AS order_id, customers.name AS customer, orders.dress_type, GREATEST(orders.price - orders.paid_amount, 0) AS due, orders.delivery_date").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Where("orders.price - orders.paid_amount > 0").
		Order("due DESC").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	jsonBytes, _ := json.Marshal(rows)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "list_outstanding_orders",
		Response: map[string]interface{}{"orders": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeBillingReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	if _, err := time.Parse("2006-01-02", startStr); err != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}
	if _, err := time.Parse("2006-01-02", endStr); err != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}

	report, err := database.GetBillingReport(startStr, endStr)
	if err != nil {
		return "", err
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_billing_report",
		Response: map[string]interface{}{
			"order_count": report.OrderCount,
			"billed":      report.TotalBilled,
			"received":    report.TotalReceived,
			"outstanding": report.TotalOutstanding,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "The assistant did not return a reply."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
