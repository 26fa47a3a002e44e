// Package service runs the admin AI assistant over the Kimi model.
package service

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/google/uuid"

	"nexus_backend/internal/assistant/transport"
	"nexus_backend/platform/ai/moonshot"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"
)

const appName = "nexus_assistant"

const basePrompt = `Tu es l'assistant interne de l'agence web Nexus. Tu aides
l'équipe à analyser les données du tableau de bord et à préparer des actions
commerciales. Réponds toujours en français, de façon concise et structurée.
Si les données fournies ne suffisent pas pour répondre, dis-le clairement au
lieu d'inventer.`

// contextPrompts refine the instruction per dashboard view.
var contextPrompts = map[string]string{
	"clients": `Les données jointes décrivent des clients et prospects de
l'agence (demandes de devis, rendez-vous, statuts). Aide à prioriser les
relances et à qualifier les contacts.`,
	"invoices": `Les données jointes décrivent des factures (numéro, statut,
montants en centimes d'euro, échéances). Aide à suivre les paiements et à
identifier les retards.`,
	"opportunities": `Les données jointes décrivent le pipeline commercial
(opportunités, étapes, montants pondérés). Aide à analyser le pipeline et à
suggérer les prochaines actions.`,
	"general": `Réponds aux questions générales sur l'activité de l'agence.`,
}

// Service owns the ADK agent and its session lifecycle.
type Service struct {
	runner         *runner.Runner
	sessionService session.Service
	log            *logger.Logger
}

// New builds the assistant agent with the Kimi model.
func New(cfg config.AssistantConfig, log *logger.Logger) (*Service, error) {
	kimi := moonshot.NewModel(moonshot.Config{
		APIKey:  cfg.GetAssistantAPIKey(),
		BaseURL: cfg.GetAssistantBaseURL(),
		Model:   cfg.GetAssistantModel(),
	})

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "NexusAssistant",
		Model:       kimi,
		Description: "Assistant interne de l'agence web Nexus pour l'analyse des clients, factures et opportunités.",
		Instruction: basePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant agent: %w", err)
	}

	sessionService := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant runner: %w", err)
	}

	return &Service{
		runner:         r,
		sessionService: sessionService,
		log:            log,
	}, nil
}

// Stream runs the assistant on a single question and invokes onToken for
// every streamed text chunk. Each request gets a throwaway session.
func (s *Service) Stream(ctx context.Context, userID uuid.UUID, req transport.ChatRequest, onToken func(token string) error) error {
	sessionUserID := "assistant-" + userID.String()
	sessionID := uuid.New().String()

	_, err := s.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    sessionUserID,
		SessionID: sessionID,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create assistant session", err)
	}
	defer func() {
		deleteReq := &session.DeleteRequest{
			AppName:   appName,
			UserID:    sessionUserID,
			SessionID: sessionID,
		}
		if deleteErr := s.sessionService.Delete(ctx, deleteReq); deleteErr != nil {
			s.log.Warn("failed to delete assistant session", "sessionId", sessionID, "error", deleteErr)
		}
	}()

	userMessage := buildUserMessage(req)
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeSSE,
	}

	sawPartial := false
	for event, err := range s.runner.Run(ctx, sessionUserID, sessionID, userMessage, runConfig) {
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "assistant run failed", err)
		}
		if event.Content == nil {
			continue
		}
		// The final aggregated event repeats the already streamed text.
		if !event.Partial && sawPartial {
			continue
		}
		if event.Partial {
			sawPartial = true
		}
		for _, part := range event.Content.Parts {
			if part.Text == "" {
				continue
			}
			if err := onToken(part.Text); err != nil {
				return err
			}
		}
	}

	return nil
}

func buildUserMessage(req transport.ChatRequest) *genai.Content {
	var b strings.Builder

	if prompt, ok := contextPrompts[req.Type]; ok {
		b.WriteString(prompt)
		b.WriteString("\n\n")
	}
	if len(req.Data) > 0 {
		b.WriteString("Données du tableau de bord (JSON):\n")
		b.Write(req.Data)
		b.WriteString("\n\n")
	}
	b.WriteString("Question: ")
	b.WriteString(req.Query)

	return &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: b.String()},
		},
	}
}
