package classifier

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

const hostedPrompt = `Analyze if this GitHub repository is suitable for training a model to generate test cases and
CMake files for embedded systems projects. ONLY answer with "Yes" or "No" followed by a very brief reason.

Repository details:
- Name: {{.Name}}
- Full Name: {{.FullName}}
- Description: {{.Description}}
- Language: {{.Language}}
- Stars: {{.Stars}}
- Topics: {{.Topics}}
- Matching Keywords: {{.Keywords}}

Criteria for YES:
1. Contains embedded systems code (not just documentation)
2. Has .c, .cpp, .h, or .hpp files that demonstrate embedded systems functionality
3. Has test files or examples showing usage patterns
4. Focuses on hardware interaction, firmware, or low-level code

Criteria for NO:
1. Very minimal code samples (only a few files with minimal content)
2. Pure documentation repositories with no actual code

Note this repository was pre-filtered for embedded systems relevance, so most should be suitable.
`

const localPrompt = `You are analyzing GitHub repositories for embedded systems code suitability.
Decide whether this repository contains embedded systems code that can be used to train a model
to generate test cases and CMake files.

Repository details:
- Name: {{.Name}}
- Full Name: {{.FullName}}
- Description: {{.Description}}
- Language: {{.Language}}
- Stars: {{.Stars}}
- Topics: {{.Topics}}
- Matching Keywords: {{.Keywords}}

IMPORTANT GUIDELINES:
1. This repository has already been pre-filtered to match embedded systems keywords.
2. A repository matching multiple embedded keywords is HIGHLY LIKELY to be suitable.
3. A repository written in C, C++ or Assembly is LIKELY to be suitable.
4. ANY repository with firmware, drivers or low-level hardware code IS SUITABLE.
5. The presence of .c, .cpp, .h or .hpp files strongly indicates a SUITABLE repository.

ANSWER FORMAT:
- Start with EXACTLY "Yes -" or "No -" followed by a brief explanation
- Keep the explanation focused on the repository's suitability
- Your entire response must not exceed 100 characters

DEFAULT BIAS:
- When in doubt, answer "Yes" since the repository has already been pre-filtered
- Only answer "No" if you are CERTAIN the repository has NO actual code or is unrelated to embedded systems

Give your assessment now:
`

// DefaultPrompts returns the built-in prompt templates keyed by prompt name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptClassifyHosted: hostedPrompt,
		driven.PromptClassifyLocal:  localPrompt,
	}
}

// promptData is the template context for classification prompts.
type promptData struct {
	Name        string
	FullName    string
	Description string
	Language    string
	Stars       int
	Topics      string
	Keywords    string
}

func newPromptData(item domain.ScoredRepository) promptData {
	data := promptData{
		Name:        item.Name,
		FullName:    item.FullName,
		Description: item.Description,
		Language:    item.Language,
		Stars:       item.Stars,
		Topics:      strings.Join(item.Topics, ", "),
		Keywords:    strings.Join(item.MatchingKeywords, ", "),
	}
	if data.Description == "" {
		data.Description = "No description"
	}
	if data.Language == "" {
		data.Language = "Unknown"
	}
	return data
}

// renderPrompt executes the named template for item.
func renderPrompt(name, text string, item domain.ScoredRepository) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newPromptData(item)); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}
