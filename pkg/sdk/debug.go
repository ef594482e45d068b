package sdk

import (
	"encoding/json"
	"strings"
)

// DebugResponse is the body returned by the validation endpoint.
type DebugResponse struct {
	HitParsingResult []HitParsingResult `json:"hitParsingResult"`
}

// HitParsingResult is the validator's verdict for one hit.
type HitParsingResult struct {
	Valid         bool            `json:"valid"`
	Hit           string          `json:"hit"`
	ParserMessage []ParserMessage `json:"parserMessage"`
}

// ParserMessage explains a validation problem.
type ParserMessage struct {
	MessageType  string `json:"messageType"`
	Description  string `json:"description"`
	MessageCode  string `json:"messageCode,omitempty"`
	ParameterKey string `json:"parameter,omitempty"`
}

// parseDebugResponse reports whether the first hit was accepted. Any body
// that does not carry hitParsingResult[0].valid counts as invalid.
func parseDebugResponse(body []byte) (bool, *DebugResponse, error) {
	var resp DebugResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, nil, err
	}
	if len(resp.HitParsingResult) == 0 {
		return false, &resp, nil
	}
	return resp.HitParsingResult[0].Valid, &resp, nil
}

func (r *DebugResponse) messages() string {
	var msgs []string
	for _, res := range r.HitParsingResult {
		for _, m := range res.ParserMessage {
			msgs = append(msgs, m.MessageType+": "+m.Description)
		}
	}
	return strings.Join(msgs, "; ")
}
