package examValidator

import (
	"lams/middleware"
	"lams/models"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type ExamRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartDatetime   *time.Time `json:"start_datetime"`
	EndDatetime     *time.Time `json:"end_datetime"`
	DurationMinutes int        `json:"duration_minutes"`
	MaxMarks        float64    `json:"max_marks"`
	MaxQuestions    int        `json:"max_questions"`
	Status          string     `json:"status"`
	CourseID        *uint      `json:"course_id"`
	ClassID         *uint      `json:"class_id"`
	SubjectID       *uint      `json:"subject_id"`
	ChapterID       *uint      `json:"chapter_id"`
	TopicID         *uint      `json:"topic_id"`
}

// AssociationFields reports which hierarchy associations are set.
func (r *ExamRequest) AssociationFields() []string {
	var set []string
	if r.CourseID != nil {
		set = append(set, "course_id")
	}
	if r.ClassID != nil {
		set = append(set, "class_id")
	}
	if r.SubjectID != nil {
		set = append(set, "subject_id")
	}
	if r.ChapterID != nil {
		set = append(set, "chapter_id")
	}
	if r.TopicID != nil {
		set = append(set, "topic_id")
	}
	return set
}

// Exam validates the create/update payload. Window bounds are optional but
// must be ordered when both are present.
func Exam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ExamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Exam title is required!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}
		if reqData.MaxQuestions < 0 {
			errors["max_questions"] = "Max questions cannot be negative!"
		}
		if reqData.StartDatetime != nil && reqData.EndDatetime != nil &&
			reqData.EndDatetime.Before(*reqData.StartDatetime) {
			errors["end_datetime"] = "End time must be after start time!"
		}
		if reqData.Status != "" && reqData.Status != models.ExamActive && reqData.Status != models.ExamInactive {
			errors["status"] = "Status must be active or inactive!"
		}
		if set := reqData.AssociationFields(); len(set) > 1 {
			errors["associations"] = "Only one of " + strings.Join(set, ", ") + " may be set!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

type AttachQuestionRequest struct {
	QuestionID uint    `json:"question_id"`
	Marks      float64 `json:"marks"`
}

func AttachQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AttachQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.QuestionID == 0 {
			errors["question_id"] = "Question id is required!"
		}
		if reqData.Marks <= 0 {
			errors["marks"] = "Marks must be positive!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttachQuestion", reqData)
		return c.Next()
	}
}

type BulkAttachRequest struct {
	Questions []AttachQuestionRequest `json:"questions"`
}

func BulkAttachQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BulkAttachRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"questions": "At least one question is required!",
			})
		}
		for _, q := range reqData.Questions {
			if q.QuestionID == 0 || q.Marks <= 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"questions": "Every entry needs a question id and positive marks!",
				})
			}
		}

		c.Locals("validatedBulkAttach", reqData)
		return c.Next()
	}
}
