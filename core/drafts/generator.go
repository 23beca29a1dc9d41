package drafts

import (
	"context"
	"encoding/json"
	"fmt"

	"nis2-copilot/core/utils"
)

// Completer is the language-model collaborator. It may fail for any reason
// (no credential, network, bad status); failure is expected and absorbed.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Result is the explicit two-variant outcome of draft generation. When Source
// is SourceFallback, Err records why the AI path was abandoned.
type Result struct {
	Bundle Bundle
	Source Source
	Err    error
}

type Generator struct {
	ai     Completer
	logger *utils.Logger
}

func NewGenerator(ai Completer, logger *utils.Logger) *Generator {
	return &Generator{ai: ai, logger: logger}
}

// Generate never fails to the caller: any error on the AI path (missing
// credential, transport, malformed or schema-violating output) substitutes
// the deterministic fallback bundle wholesale. No partial merge between AI
// output and fallback is permitted.
func (g *Generator) Generate(ctx context.Context, pc PromptContext) Result {
	bundle, err := g.tryAI(ctx, pc)
	if err != nil {
		g.logger.Errorf("draft generation degraded to fallback: %v", err)
		return Result{Bundle: FallbackBundle(pc.AwarenessUTC), Source: SourceFallback, Err: err}
	}
	return Result{Bundle: bundle, Source: SourceAI}
}

func (g *Generator) tryAI(ctx context.Context, pc PromptContext) (Bundle, error) {
	if g.ai == nil {
		return Bundle{}, fmt.Errorf("no completer configured")
	}
	system, user := BuildPrompt(pc)
	text, err := g.ai.Complete(ctx, system, user)
	if err != nil {
		return Bundle{}, err
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return Bundle{}, fmt.Errorf("draft response is not valid JSON: %w", err)
	}
	if err := bundleSchema.Validate(decoded); err != nil {
		return Bundle{}, fmt.Errorf("draft response violates schema: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal([]byte(text), &bundle); err != nil {
		return Bundle{}, fmt.Errorf("draft response decode: %w", err)
	}
	return bundle, nil
}
