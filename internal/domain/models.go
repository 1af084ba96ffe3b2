package domain

// Choice is a selectable answer option. Its ID is unique within the owning question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a prompt with an ordered choice list and one designated correct choice.
type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Choices         []Choice `json:"choices"`
	CorrectChoiceID string   `json:"correctChoiceId"`
}

// Quiz is a titled, described collection of questions. QuestionCount is a
// persisted cache of len(Questions) so listing views never fetch children;
// it is recomputed on every write.
type Quiz struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	QuestionCount int        `json:"questionCount"`
	Questions     []Question `json:"questions"`
}

// QuizSummary is the listing view of a quiz: metadata only, no questions.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
}
