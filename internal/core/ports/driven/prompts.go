package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the built-in
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
// Templates use text/template syntax over the repository being classified.
const (
	// PromptClassifyHosted is the prompt sent to hosted model APIs.
	PromptClassifyHosted = "classify_hosted"

	// PromptClassifyLocal is the prompt sent to a locally served model.
	// It carries an explicit bias toward "Yes" and a shorter answer cap.
	PromptClassifyLocal = "classify_local"
)
