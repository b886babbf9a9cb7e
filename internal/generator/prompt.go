package generator

import (
	"fmt"
	"strings"
)

const vocabSystemPrompt = `You are an English vocabulary coach creating flashcards for an adult language learner. Choose useful, interesting words that fit the learner's level.`

func buildVocabUserMessage(topic, level string, count int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(fmt.Sprintf("Learner level: %s\n", level))
	b.WriteString(fmt.Sprintf("Number of cards: %d\n", count))

	b.WriteString(`
Instructions:
Create the requested number of vocabulary flashcards:
1. Pick distinct words related to the topic. Avoid words a learner at this level would already know well.
2. Give a one-sentence definition in plain English.
3. Include an IPA transcription wrapped in slashes, e.g. /ɪˈfem.ər.əl/.
4. Write a natural example sentence that shows the word in context.`)

	return b.String()
}

const practiceSystemPrompt = `You are a TOEIC test preparation expert. Write realistic practice questions in the style of the official reading section.`

func buildPracticeUserMessage(part PracticePart) string {
	if part == PartIncompleteSentences {
		return `Instructions:
Create 5 "TOEIC Part 5: Incomplete Sentences" practice questions:
1. Each prompt is a single sentence with the missing word replaced by _____.
2. Test common business grammar and vocabulary points.
3. Each question has exactly 4 options with one correct answer.
4. Include a one-sentence explanation for each correct answer.
Leave the passage empty.`
	}

	return `Instructions:
Create a "TOEIC Part 7: Reading Comprehension" practice set:
1. Write a short business email, memo, or advertisement of roughly 100-150 words as the passage.
2. Write 3 multiple-choice questions about the passage.
3. Each question has exactly 4 options with one correct answer.
4. Include a one-sentence explanation for each correct answer.`
}

const quizSystemPrompt = `You are an English reading tutor. Write short passages and comprehension questions matched to a learner's level.`

func buildQuizUserMessage(topic, level string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(fmt.Sprintf("Learner level: %s\n", level))

	b.WriteString(`
Instructions:
1. Write a passage of 120-180 words about the topic, using vocabulary and sentence structure appropriate for the learner's level.
2. Write 4 multiple-choice comprehension questions about the passage.
3. Each question has exactly 4 options with one correct answer. Vary which position holds the correct answer.
4. Include a one-sentence explanation for each correct answer.`)

	return b.String()
}
