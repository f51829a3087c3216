package prompt

import "fmt"

// BuildTimestampSelector asks the model to pick the single transcript
// timestamp most relevant to the question. The reply is validated against the
// timestamps actually present in the excerpt before use.
func BuildTimestampSelector(question, excerpt string) string {
	return fmt.Sprintf(`I have a question and a transcript with multiple timestamps. Please identify the most relevant timestamp that best answers the question.

Question: %s

Transcript:
%s

Please respond with ONLY the most relevant timestamp in HH:MM:SS format (e.g., "00:03:45").
If you cannot determine a relevant timestamp, respond with "00:00:00".`, question, excerpt)
}
