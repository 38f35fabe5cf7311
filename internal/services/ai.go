package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/repository"
)

// SuggestionService drafts tasks for a proposal with OpenAI. Nothing it
// returns is written to the store.
type SuggestionService struct {
	client       *openai.Client
	model        string
	proposalRepo repository.ProposalRepository
	now          func() time.Time
}

// SuggestedTask is a task draft the caller may submit to POST /tasks.
type SuggestedTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
}

// NewOpenAIClient returns nil when apiKey is empty. baseURL overrides the
// API location when set.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// NewSuggestionService creates a SuggestionService. A nil client disables it.
func NewSuggestionService(client *openai.Client, model string, proposalRepo repository.ProposalRepository) *SuggestionService {
	if model == "" {
		model = openai.GPT4o
	}
	return &SuggestionService{
		client:       client,
		model:        model,
		proposalRepo: proposalRepo,
		now:          time.Now,
	}
}

// Enabled reports whether an API key was configured.
func (s *SuggestionService) Enabled() bool {
	return s != nil && s.client != nil
}

// SuggestTasks asks the model to break the proposal into tasks
func (s *SuggestionService) SuggestTasks(ctx context.Context, proposalID string) ([]SuggestedTask, error) {
	if !s.Enabled() {
		return nil, ErrSuggestionsUnavailable
	}

	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find proposal: %w", err)
	}

	description := ""
	if proposal.Description != nil {
		description = *proposal.Description
	}

	currentTime := s.now().UTC().Format(time.RFC3339)
	prompt := fmt.Sprintf(`You are a project planning assistant. Break the following proposal into concrete, actionable tasks.

Current time: %s

Proposal title: %s

Proposal description:
%s

Return a JSON array of tasks in this format:
[
  {
    "title": "short task title",
    "description": "what needs to be done",
    "deadline": "ISO8601 deadline, e.g. 2025-10-28T23:59:59Z, or null if none is implied"
  }
]

Rules:
- Return an empty array [] if no tasks can be derived
- Convert relative dates ("tomorrow", "next week") to absolute timestamps
- Return JSON only, without any explanation`, currentTime, proposal.Title, description)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseSuggestions(resp.Choices[0].Message.Content)
}

func parseSuggestions(content string) ([]SuggestedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var drafts []SuggestedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	tasks := make([]SuggestedTask, 0, len(drafts))
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}
		draft.Deadline = nonEmpty(draft.Deadline)
		tasks = append(tasks, draft)
		if len(tasks) == constants.MaxSuggestedTasks {
			break
		}
	}
	return tasks, nil
}
