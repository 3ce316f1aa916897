package academicsValidator

import (
	"fmt"
	"lams/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into the field->message
// map used by ValidationErrorResponse.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("%s is required!", fe.Field())
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
		case "gte":
			errors[field] = fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
		default:
			errors[field] = fmt.Sprintf("%s is invalid!", fe.Field())
		}
	}
	return errors
}

type ClassRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

func Class() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ClassRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedClass", reqData)
		return c.Next()
	}
}

type StreamRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	ClassID     uint   `json:"class_id" validate:"required"`
}

func Stream() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StreamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedStream", reqData)
		return c.Next()
	}
}

type SubjectRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"required,min=2"`
	Credits     int    `json:"credits" validate:"gte=0"`
	StreamID    uint   `json:"stream_id" validate:"required"`
}

func Subject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubjectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedSubject", reqData)
		return c.Next()
	}
}

type ChapterRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	Description   string `json:"description"`
	ChapterNumber int    `json:"chapter_number" validate:"gte=0"`
	IsActive      *bool  `json:"is_active"`
	SubjectID     uint   `json:"subject_id" validate:"required"`
}

func Chapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

type TopicRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	Description   string `json:"description"`
	TopicNumber   int    `json:"topic_number" validate:"gte=0"`
	EstimatedTime int    `json:"estimated_time" validate:"gte=0"`
	IsActive      *bool  `json:"is_active"`
	ChapterID     uint   `json:"chapter_id" validate:"required"`
}

func Topic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TopicRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

type CourseRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Level       string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	IsActive    *bool  `json:"is_active"`
	StreamID    *uint  `json:"stream_id"`
	SubjectID   *uint  `json:"subject_id"`
	ChapterID   *uint  `json:"chapter_id"`
	TopicID     *uint  `json:"topic_id"`
}

// AssociationFields reports which hierarchy associations are set.
func (r *CourseRequest) AssociationFields() []string {
	var set []string
	if r.StreamID != nil {
		set = append(set, "stream_id")
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

// Course validates the payload and enforces that at most one hierarchy
// association is set, naming the offending fields when more than one is.
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if set := reqData.AssociationFields(); len(set) > 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"associations": "Only one of " + strings.Join(set, ", ") + " may be set!",
			})
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
