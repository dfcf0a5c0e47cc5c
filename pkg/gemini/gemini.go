package gemini

import (
	"context"
	"fmt"
	"strings"

	"tienda/internal/models"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// FallbackReply is returned when the model produces no text. The assistant
// speaks Spanish to the end user, matching the system instructions.
const FallbackReply = "Lo siento, no tengo información suficiente en este momento."

const systemInstructions = `Eres un asistente virtual experto en ventas de zapatos para una tienda online.
Tu objetivo es ayudar a los clientes a encontrar el calzado perfecto.

INSTRUCCIONES:
- Sé amable y profesional
- Usa el contexto de la conversación anterior
- Recomienda productos concretos cuando sea apropiado
- Menciona precios, tallas y disponibilidad
- Si no tienes la información, sé honesto
- Responde siempre en español`

// Config holds the Gemini client settings.
type Config struct {
	APIKey string
	Model  string
}

// Client generates assistant replies through the Gemini API. It implements
// the chat service's AIService interface.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client from the given config. The API key is
// required; the model falls back to a sensible default.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// GenerateResponse builds the sales-assistant prompt from the catalog and the
// recent conversation and asks Gemini for a reply.
func (c *Client) GenerateResponse(ctx context.Context, userMessage string, products []models.Product, chatContext models.ChatContext) (string, error) {
	prompt := BuildPrompt(userMessage, products, chatContext)

	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstructions, genai.RoleUser),
		Temperature:       &temp,
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}

// BuildPrompt assembles the plain-text prompt sent to the model: the catalog
// listing, the recent-history transcript, and the new user message.
func BuildPrompt(userMessage string, products []models.Product, chatContext models.ChatContext) string {
	var b strings.Builder
	b.WriteString("AVAILABLE PRODUCTS:\n")
	b.WriteString(FormatProducts(products))
	b.WriteString("\n\nRecent history:\n")
	b.WriteString(chatContext.FormatForPrompt())
	b.WriteString("\n\nUser: ")
	b.WriteString(userMessage)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// FormatProducts renders one catalog line per product for the prompt.
func FormatProducts(products []models.Product) string {
	if len(products) == 0 {
		return "No products available at the moment."
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		availability := "Available"
		if !p.IsAvailable() {
			availability = "Out of stock"
		}
		lines = append(lines, fmt.Sprintf(
			"- %s | Brand: %s | Category: %s | Size: %s | Color: %s | Price: $%.2f | Stock: %d (%s)",
			p.Name, p.Brand, p.Category, p.Size, p.Color, p.Price, p.Stock, availability,
		))
	}
	return strings.Join(lines, "\n")
}
