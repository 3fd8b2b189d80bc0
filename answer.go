package eventchat

import "encoding/json"

// FollowUpSeparator is placed between an answer and its follow-up question.
const FollowUpSeparator = "\n\n💬 "

// Answer is the terminal result assembled from a stream.
type Answer struct {
	Text     string
	FollowUp string
	// Raw is true when the payload was not a structured answer and Text is
	// the payload verbatim.
	Raw bool
}

// String returns the display text: the answer, then the follow-up below a
// separator when present.
func (a Answer) String() string {
	if a.FollowUp == "" {
		return a.Text
	}
	return a.Text + FollowUpSeparator + a.FollowUp
}

// ParseAnswer parses the accumulated payload as {answer, follow_up}.
// It never fails: a payload that is not exactly one JSON object yields the
// payload verbatim with Raw set. Keys match case-sensitively. An object with
// an empty answer keeps its follow-up but displays the payload in place of
// the answer.
func ParseAnswer(payload string) Answer {
	raw := Answer{Text: payload, Raw: true}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return raw
	}
	followUp, ok := stringField(fields, "follow_up")
	if !ok {
		return raw
	}
	text, ok := stringField(fields, "answer")
	if !ok {
		return raw
	}
	if text == "" {
		return Answer{Text: payload, FollowUp: followUp, Raw: true}
	}
	return Answer{Text: text, FollowUp: followUp}
}

// stringField returns fields[key] as a string. A missing key or JSON null
// reads as "". Any other non-string value is reported as not ok.
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	v, found := fields[key]
	if !found {
		return "", true
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	if s == nil {
		return "", true
	}
	return *s, true
}
