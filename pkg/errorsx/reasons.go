package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonModelUnavailable ReasonCode = "model_unavailable"
	ReasonModelRateLimit   ReasonCode = "model_rate_limit"

	ReasonUnknownTool        ReasonCode = "unknown_tool"
	ReasonDuplicateTool      ReasonCode = "duplicate_tool"
	ReasonMalformedArguments ReasonCode = "malformed_arguments"

	ReasonEvaluation        ReasonCode = "evaluation_error"
	ReasonSearchUnavailable ReasonCode = "search_unavailable"

	ReasonTransportSend ReasonCode = "transport_send"
)
