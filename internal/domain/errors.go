package domain

import "errors"

var (
	// ErrInvalidMediaID indicates a media id containing path traversal characters
	ErrInvalidMediaID = errors.New("invalid media id")

	// ErrUnsupportedMedia indicates a file with a disallowed extension or size
	ErrUnsupportedMedia = errors.New("unsupported media file")

	// ErrMediaNotFound indicates no media folder exists for the given id
	ErrMediaNotFound = errors.New("media folder not found")

	// ErrInvalidRequest indicates a request missing required fields (4xx)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMissingAPIKey indicates no usable OpenAI API key was provided or configured
	ErrMissingAPIKey = errors.New("missing openai api key")

	// ErrAssistantAPI indicates a failure reported by the assistants service
	ErrAssistantAPI = errors.New("assistants api error")

	// ErrRunNotCompleted indicates a run ended in a terminal state other than completed
	ErrRunNotCompleted = errors.New("run did not complete")

	// ErrRunTimedOut indicates a run did not reach a terminal state before the deadline
	ErrRunTimedOut = errors.New("run timed out")

	// ErrNoAnswer indicates the assistant produced no extractable answer text
	ErrNoAnswer = errors.New("no answer text in assistant response")

	// ErrScriptNotFound indicates an unknown script id
	ErrScriptNotFound = errors.New("script not found")

	// ErrResultNotFound indicates an unknown result id
	ErrResultNotFound = errors.New("result not found")
)
