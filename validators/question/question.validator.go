package questionValidator

import (
	"lams/middleware"
	"lams/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type AnswerPayload struct {
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Content         string          `json:"content"`
	ImageURL        string          `json:"image_url"`
	DifficultyLevel string          `json:"difficulty_level"`
	TopicID         *uint           `json:"topic_id"`
	ChapterID       *uint           `json:"chapter_id"`
	SubjectID       *uint           `json:"subject_id"`
	CourseID        *uint           `json:"course_id"`
	Answers         []AnswerPayload `json:"answers"`
}

// AssociationFields reports which hierarchy associations are set.
func (r *QuestionRequest) AssociationFields() []string {
	var set []string
	if r.TopicID != nil {
		set = append(set, "topic_id")
	}
	if r.ChapterID != nil {
		set = append(set, "chapter_id")
	}
	if r.SubjectID != nil {
		set = append(set, "subject_id")
	}
	if r.CourseID != nil {
		set = append(set, "course_id")
	}
	return set
}

// Question validates the create/update payload: non-empty content, a known
// difficulty, at most one hierarchy association, and when answers are supplied
// at least one of them must be marked correct.
func Question() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Question content is required!"
		}

		if reqData.DifficultyLevel != "" {
			switch reqData.DifficultyLevel {
			case models.DifficultyEasy, models.DifficultyModerate, models.DifficultyDifficult:
			default:
				errors["difficulty_level"] = "Difficulty must be easy, moderate or difficult!"
			}
		}

		if set := reqData.AssociationFields(); len(set) > 1 {
			errors["associations"] = "Only one of " + strings.Join(set, ", ") + " may be set!"
		}

		if len(reqData.Answers) > 0 {
			hasCorrect := false
			for _, a := range reqData.Answers {
				if strings.TrimSpace(a.Content) == "" {
					errors["answers"] = "Answer content cannot be empty!"
					break
				}
				if a.IsCorrect {
					hasCorrect = true
				}
			}
			if _, dup := errors["answers"]; !dup && !hasCorrect {
				errors["answers"] = "At least one answer must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
