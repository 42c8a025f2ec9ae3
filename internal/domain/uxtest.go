package domain

// Question struct - One scripted interview question.
// Immutable once a test run has started.
type Question struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	UserFollowUp bool   `json:"userFollowUp,omitempty"`
}

// Script struct - An ordered list of questions. Order is the interrogation
// order: later questions build on the conversational context of earlier ones.
type Script struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Response struct - The answer the simulated participant gave for one question.
type Response struct {
	Question Question `json:"question"`
	Response string   `json:"response"`
}

// UXTestResult struct - The durable record assembled from one completed test
// run. Immutable after assembly. Media entries are store-relative paths
// (mediaId/filename). Timestamps are RFC3339 strings.
type UXTestResult struct {
	ID             string     `json:"id"`
	ScriptID       string     `json:"scriptId"`
	ScriptName     string     `json:"scriptName"`
	MediaID        string     `json:"mediaId"`
	TimestampStart string     `json:"timestampStart"`
	TimestampEnd   string     `json:"timestampEnd"`
	Media          []string   `json:"media"`
	AssistantID    string     `json:"assistantId"`
	Responses      []Response `json:"responses"`
}
