package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizcraft-service/internal/app"
	"quizcraft-service/internal/domain"
)

// PlayHandler drives a quiz play session over a websocket. The session lives
// for the duration of the connection and is discarded when it closes.
type PlayHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewPlayHandler(service *app.QuizService) *PlayHandler {
	return &PlayHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	QuestionID string `json:"questionId"`
	ChoiceID   string `json:"choiceId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// choiceView deliberately carries no correctness flag; the correct choice id
// is never sent to the player mid-session.
type choiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionPayload struct {
	QuestionID       string       `json:"questionId"`
	Text             string       `json:"text"`
	Choices          []choiceView `json:"choices"`
	Index            int          `json:"index"`
	Total            int          `json:"total"`
	SelectedChoiceID string       `json:"selectedChoiceId,omitempty"`
}

type completedPayload struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// ServePlay upgrades the connection and runs the session loop: inbound
// select/next/previous messages, outbound question/completed/error frames.
func (h *PlayHandler) ServePlay(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	quiz, err := h.service.Get(r.Context(), quizID)
	if err != nil {
		status := http.StatusInternalServerError
		if err == domain.ErrQuizNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := app.NewPlaySession(quiz)
	if !session.HasQuestions() {
		_ = conn.WriteJSON(outboundMessage[completedPayload]{Type: "noQuestions", Payload: completedPayload{}})
		return
	}
	h.sendQuestion(conn, session)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendError(conn, "invalid select payload")
				continue
			}
			if err := session.SelectChoice(payload.QuestionID, payload.ChoiceID); err != nil {
				sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, session)
		case "next":
			if err := session.Next(); err != nil {
				sendError(conn, err.Error())
				continue
			}
			if score, total, done := session.Result(); done {
				_ = conn.WriteJSON(outboundMessage[completedPayload]{
					Type:    "completed",
					Payload: completedPayload{Score: score, Total: total},
				})
				return
			}
			h.sendQuestion(conn, session)
		case "previous":
			if err := session.Previous(); err != nil {
				sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, session)
		default:
			sendError(conn, "unsupported message type")
		}
	}
}

func (h *PlayHandler) sendQuestion(conn *websocket.Conn, session *app.PlaySession) {
	question, ok := session.CurrentQuestion()
	if !ok {
		return
	}
	index, total := session.Progress()

	choices := make([]choiceView, 0, len(question.Choices))
	for _, c := range question.Choices {
		choices = append(choices, choiceView{ID: c.ID, Text: c.Text})
	}
	selected, _ := session.Answer(question.ID)

	_ = conn.WriteJSON(outboundMessage[questionPayload]{
		Type: "question",
		Payload: questionPayload{
			QuestionID:       question.ID,
			Text:             question.Text,
			Choices:          choices,
			Index:            index,
			Total:            total,
			SelectedChoiceID: selected,
		},
	})
}

func sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Error: message}})
}
