package llm

import "fmt"

// RecommendationPrompt asks for exactly six titles similar to seed, one per line.
func RecommendationPrompt(seed string) string {
	return fmt.Sprintf(`As an expert film critic and recommendation specialist, suggest exactly 6 movies similar to '%[1]s'.

Consider these aspects in your analysis:

1. Emotional resonance and atmosphere: mood, pacing, tone and visual style.
2. Narrative elements: story structure, character dynamics, thematic depth, plot twists.
3. Viewer experience: the emotional journey and intellectual engagement of the audience.
4. Audience overlap: movies frequently enjoyed by fans of '%[1]s'.
5. Technical and artistic merit: directorial style, cinematography, score and sound design.

Provide exactly 6 movie titles that best match these criteria. Focus on creating a cohesive viewing experience similar to '%[1]s'.

Return ONLY the movie titles, one per line, without any additional text, numbers, or explanations.
Do not include the original movie in the recommendations.`, seed)
}

// TranslationPrompt asks for an idiomatic translation of text into language.
func TranslationPrompt(language, text string) string {
	return fmt.Sprintf(`As a professional film translator, translate the following text into fluent, natural %[1]s.
- Use common, idiomatic %[1]s expressions
- Sentences must read naturally rather than word for word
- Use simple, easy to understand vocabulary
- Keep movie titles in English

Return only the translation.

Text: %[2]s`, language, text)
}
