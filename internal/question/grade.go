package question

// Grade is the outcome of scoring one answer sheet against a set.
type Grade struct {
	Correct    []bool
	Score      int
	Total      int
	Unanswered int
}

// GradeAnswers scores answers positionally against the set's answer key.
// Missing and blank positions score zero and count as unanswered; answers
// beyond the end of the set are ignored.
func GradeAnswers(set Set, answers []string) Grade {
	grade := Grade{
		Correct: make([]bool, len(set.Questions)),
		Total:   len(set.Questions),
	}
	for i, q := range set.Questions {
		if i >= len(answers) || NormalizeAnswerText(answers[i]) == "" {
			grade.Unanswered++
			continue
		}
		if AnswerMatches(answers[i], q.Answer) {
			grade.Correct[i] = true
			grade.Score++
		}
	}
	return grade
}
