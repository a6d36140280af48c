package evaluate

import "fmt"

const rubric = `Based on the Original Text, please evaluate the User Summary. Assess its comprehension based on:
1. Accuracy: Does the summary correctly represent the information in the original text?
2. Key Points Coverage: Does the summary include the main ideas and crucial supporting details?
3. Completeness: How much of the core information is captured?
4. Misinterpretations: Are there any points that are clearly misunderstood?

Provide:
- A qualitative rating (e.g., Excellent, Good, Fair, Poor).
- A list of key points correctly captured in the summary.
- A list of significant points from the original text that were missed or misrepresented in the summary.
- A brief overall comment on the user's comprehension based on their WPM.`

// BuildPrompt renders the evaluation instructions for a request.
func BuildPrompt(req Request) string {
	return fmt.Sprintf("Original Text:\n\"\"\"\n%s\n\"\"\"\n\nUser Summary:\n\"\"\"\n%s\n\"\"\"\n\nWPM: %d\n\n%s\n",
		req.Text, req.Summary, req.WPM, rubric)
}
