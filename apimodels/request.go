package apimodels

type AnalysisRequest struct {
	// Query is the raw GraphQL query to analyze. It is forwarded to the
	// analysis backend verbatim; this service never parses it.
	Query string `json:"query"`

	// SessionID, when set, asks the server to append the exchange to the
	// session's conversation transcript.
	SessionID string `json:"sessionId,omitempty"`
}
