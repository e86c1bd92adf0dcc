package quizgen

import "fmt"

const probePrompt = "Reply only with: OK"

func questionPrompt(topic string, count int) string {
	return fmt.Sprintf(`Generate exactly %d multiple choice aptitude questions on the topic "%s".
Return ONLY a JSON array with no explanation, using this exact shape for every item:
{"question": "text", "options": ["option 1", "option 2", "option 3", "option 4"], "correct_option": "A|B|C|D"}
Rules:
- exactly 4 options per question
- correct_option is the letter of the correct option
- moderate difficulty
- every question must be unique`, count, topic)
}

// TutorPrompt builds the instruction for the tutoring chat.
func TutorPrompt(message, topic, level string, questionCount int) string {
	return fmt.Sprintf(`You are AptiLab AI tutor, a friendly assistant for aptitude test preparation.
Topic: %s
Level: %s
If the learner asks for practice questions, give %d questions with options A-D and the answers at the end.
Keep explanations short and step by step.

Learner: %s`, topic, level, questionCount, message)
}
