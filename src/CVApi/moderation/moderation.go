package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campus-voice/campusvoice/src/CVApi/types"
	"github.com/campus-voice/campusvoice/src/shared/ai"
)

const systemPrompt = `You are the content moderator for a school proposal board.
Given a proposal title and content, decide whether it is appropriate to publish
(reject abuse, spam, personal attacks, and off-topic content), classify it into
exactly one category of RULES, FACILITIES, CURRICULUM or OTHER, and extract up
to five short topic tags, each starting with '#'. When the text is appropriate
but poorly worded, you may supply a cleaned-up title and content. Always reply
with a single JSON object and nothing else:
{"approved": bool, "category": string, "tags": [string], "refinedTitle": string, "refinedContent": string, "advice": string}
advice is a one or two sentence note to the author explaining the outcome.`

const unavailableAdvice = "The automatic content check is temporarily unavailable. Please try again in a moment."

// checkTimeout bounds a single classify call; expiry counts as a
// moderation failure.
const checkTimeout = 30 * time.Second

// Client classifies drafts through an LLM provider. One external call per
// Classify, no retries, fails closed.
type Client struct {
	llm ai.Client
}

func New(llm ai.Client) *Client {
	return &Client{llm: llm}
}

// Classify runs the moderation check for a (title, content) pair. The
// returned verdict is always usable: on any transport, status or parse
// error it is a rejection with category OTHER and a non-empty advisory.
func (c *Client) Classify(ctx context.Context, title, content string) types.ModerationVerdict {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	input := fmt.Sprintf("Title: %s\n\nContent:\n%s", title, content)
	raw, err := c.llm.Complete(ctx, input, ai.Options{SystemPrompt: systemPrompt})
	if err != nil {
		log.Printf("moderation: classify failed: %v", err)
		return rejectedVerdict(title, content)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		log.Printf("moderation: bad verdict payload: %v", err)
		return rejectedVerdict(title, content)
	}

	verdict.BoundTitle = title
	verdict.BoundContent = content
	return verdict
}

func rejectedVerdict(title, content string) types.ModerationVerdict {
	return types.ModerationVerdict{
		Approved:     false,
		Category:     types.CategoryOther,
		Tags:         []string{},
		Advice:       unavailableAdvice,
		BoundTitle:   title,
		BoundContent: content,
	}
}

// parseVerdict decodes the model reply. approved, category and tags are
// mandatory; a missing or unknown category falls back to OTHER only when
// the field is present, otherwise the payload is malformed.
func parseVerdict(raw string) (types.ModerationVerdict, error) {
	var body struct {
		Approved       *bool     `json:"approved"`
		Category       *string   `json:"category"`
		Tags           *[]string `json:"tags"`
		RefinedTitle   string    `json:"refinedTitle"`
		RefinedContent string    `json:"refinedContent"`
		Advice         string    `json:"advice"`
	}

	if err := json.Unmarshal([]byte(extractJSON(raw)), &body); err != nil {
		return types.ModerationVerdict{}, err
	}
	if body.Approved == nil || body.Category == nil || body.Tags == nil {
		return types.ModerationVerdict{}, fmt.Errorf("missing required verdict fields")
	}

	category := strings.ToUpper(strings.TrimSpace(*body.Category))
	if !types.ValidCategory(category) {
		category = types.CategoryOther
	}

	tags := make([]string, 0, len(*body.Tags))
	for _, t := range *body.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		tags = append(tags, t)
	}

	return types.ModerationVerdict{
		Approved:       *body.Approved,
		Category:       category,
		Tags:           tags,
		RefinedTitle:   strings.TrimSpace(body.RefinedTitle),
		RefinedContent: strings.TrimSpace(body.RefinedContent),
		Advice:         strings.TrimSpace(body.Advice),
	}, nil
}

// extractJSON tolerates models that wrap the object in a code fence or
// surrounding prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
