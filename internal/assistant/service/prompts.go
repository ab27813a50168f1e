package service

import (
	"fmt"
	"strconv"
	"strings"

	"broker_portal_backend/internal/assistant/domain"
	"broker_portal_backend/internal/assistant/repository"
	"broker_portal_backend/platform/ai"
)

const systemPrompt = `Você é a Iza, assistente virtual de um portal imobiliário brasileiro.
Seu papel é qualificar compradores e locatários: descobrir operação (compra, aluguel ou temporada),
tipo de imóvel, cidade, bairro e orçamento, uma pergunta por vez, sempre em português informal e cordial.
Nunca invente imóveis: apresente apenas os imóveis e opções fornecidos no contexto da conversa.
Se o usuário for corretor, direcione para os planos do portal. Responda em no máximo três frases.`

// maxHistoryMessages bounds how much of the log goes into the prompt.
const maxHistoryMessages = 20

// buildPrompt assembles the completion request: persona, turn context with
// the extracted state and the options/listings the reply must stick to, then
// the recent message history.
func buildPrompt(c domain.Conversation, history []repository.Message, turnContext string) []ai.Message {
	var state strings.Builder
	state.WriteString("Estado da conversa:")
	if c.Operation != "" {
		state.WriteString(" operação=" + string(c.Operation) + ";")
	}
	if c.PropertyType != "" {
		state.WriteString(" tipo=" + string(c.PropertyType) + ";")
	}
	if c.City != "" {
		state.WriteString(" cidade=" + c.City + ";")
	}
	if len(c.Neighborhoods) > 0 {
		state.WriteString(" bairros=" + strings.Join(c.Neighborhoods, ",") + ";")
	}
	if c.MaxBudgetCents != nil {
		state.WriteString(" orçamento máximo=" + FormatReais(*c.MaxBudgetCents) + ";")
	}

	messages := []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "system", Content: state.String() + "\n" + turnContext},
	}

	start := 0
	if len(history) > maxHistoryMessages {
		start = len(history) - maxHistoryMessages
	}
	for _, m := range history[start:] {
		role := "user"
		if m.Role == repository.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, ai.Message{Role: role, Content: m.Content})
	}
	return messages
}

// Canned pt-BR fallbacks, used when the completion collaborator is absent or
// fails. One per funnel phase so the conversation always moves forward.
var cannedReplies = map[domain.Phase]string{
	domain.PhaseStart:                "Olá! Eu sou a Iza 😊 Você está procurando imóvel para comprar, alugar ou para temporada?",
	domain.PhaseAwaitingType:         "Ótimo! Que tipo de imóvel você procura?",
	domain.PhaseAwaitingCity:         "Perfeito! Em qual cidade você quer morar?",
	domain.PhaseAwaitingNeighborhood: "Boa escolha! Tem algum bairro de preferência?",
	domain.PhaseResults:              "Encontrei algumas opções que combinam com o que você procura:",
	domain.PhaseClosing:              "Foi um prazer ajudar! Se quiser, posso te colocar em contato com o corretor.",
	domain.PhaseBroker:               "Que bom ter você aqui! Temos planos para corretores anunciarem no portal.",
}

const cannedEmptyResults = "Ainda não encontrei imóveis com esse perfil. Quer ampliar a busca para outros bairros ou encomendar um imóvel?"

const cannedRefinePrice = "Encontrei bastante coisa! Para afinar a busca, qual faixa de preço combina mais com você?"

func cannedReply(phase domain.Phase) string {
	if text, ok := cannedReplies[phase]; ok {
		return text
	}
	return cannedReplies[domain.PhaseStart]
}

// FormatReais renders cents as a pt-BR money string, "R$ 350.000".
func FormatReais(cents int64) string {
	reais := cents / 100
	digits := strconv.FormatInt(reais, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String()
	if negative {
		out = "R$ -" + b.String()
	}
	return out
}

func formatBand(band domain.PriceBand) string {
	return fmt.Sprintf("%s a %s", FormatReais(band.MinCents), FormatReais(band.MaxCents))
}
