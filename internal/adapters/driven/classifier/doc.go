// Package classifier implements the repository classification backends.
//
// LLMClassifier renders a prompt template for a scored repository, sends it to
// an LLM service with a fixed retry budget and maps the answer to a verdict
// with ParseVerdict. Unavailable is the backend used when a requested model
// could not be initialised; it answers without any I/O.
package classifier
