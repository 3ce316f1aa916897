package academicsRoutes

import (
	academicsControllers "lams/controllers/academics"
	"lams/middleware"
	"lams/models"
	academicsValidators "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

// SetupAcademicsRoutes wires the content hierarchy CRUD. Reads are open to any
// authenticated user; writes need teacher role or above.
func SetupAcademicsRoutes(app *fiber.App) {
	teacherUp := middleware.RequireRole(models.RoleTeacher)

	classGroup := app.Group("/api/classes", middleware.Protected)
	classGroup.Get("/", academicsControllers.ListClasses)
	classGroup.Get("/:id", academicsControllers.GetClass)
	classGroup.Post("/", teacherUp, academicsValidators.Class(), academicsControllers.CreateClass)
	classGroup.Put("/:id", teacherUp, academicsValidators.Class(), academicsControllers.UpdateClass)
	classGroup.Delete("/:id", teacherUp, academicsControllers.DeleteClass)

	streamGroup := app.Group("/api/streams", middleware.Protected)
	streamGroup.Get("/", academicsControllers.ListStreams)
	streamGroup.Get("/by-class/:classId", academicsControllers.ListStreamsByClass)
	streamGroup.Get("/:id", academicsControllers.GetStream)
	streamGroup.Post("/", teacherUp, academicsValidators.Stream(), academicsControllers.CreateStream)
	streamGroup.Put("/:id", teacherUp, academicsValidators.Stream(), academicsControllers.UpdateStream)
	streamGroup.Delete("/:id", teacherUp, academicsControllers.DeleteStream)

	subjectGroup := app.Group("/api/subjects", middleware.Protected)
	subjectGroup.Get("/", academicsControllers.ListSubjects)
	subjectGroup.Get("/by-stream/:streamId", academicsControllers.ListSubjectsByStream)
	subjectGroup.Get("/:id", academicsControllers.GetSubject)
	subjectGroup.Post("/", teacherUp, academicsValidators.Subject(), academicsControllers.CreateSubject)
	subjectGroup.Put("/:id", teacherUp, academicsValidators.Subject(), academicsControllers.UpdateSubject)
	subjectGroup.Delete("/:id", teacherUp, academicsControllers.DeleteSubject)

	chapterGroup := app.Group("/api/chapters", middleware.Protected)
	chapterGroup.Get("/", academicsControllers.ListChapters)
	chapterGroup.Get("/by-subject/:subjectId", academicsControllers.ListChaptersBySubject)
	chapterGroup.Get("/:id", academicsControllers.GetChapter)
	chapterGroup.Post("/", teacherUp, academicsValidators.Chapter(), academicsControllers.CreateChapter)
	chapterGroup.Put("/:id", teacherUp, academicsValidators.Chapter(), academicsControllers.UpdateChapter)
	chapterGroup.Delete("/:id", teacherUp, academicsControllers.DeleteChapter)

	topicGroup := app.Group("/api/topics", middleware.Protected)
	topicGroup.Get("/", academicsControllers.ListTopics)
	topicGroup.Get("/by-chapter/:chapterId", academicsControllers.ListTopicsByChapter)
	topicGroup.Get("/:id", academicsControllers.GetTopic)
	topicGroup.Post("/", teacherUp, academicsValidators.Topic(), academicsControllers.CreateTopic)
	topicGroup.Put("/:id", teacherUp, academicsValidators.Topic(), academicsControllers.UpdateTopic)
	topicGroup.Delete("/:id", teacherUp, academicsControllers.DeleteTopic)

	courseGroup := app.Group("/api/courses", middleware.Protected)
	courseGroup.Get("/", academicsControllers.ListCourses)
	courseGroup.Get("/:id", academicsControllers.GetCourse)
	courseGroup.Post("/", teacherUp, academicsValidators.Course(), academicsControllers.CreateCourse)
	courseGroup.Put("/:id", teacherUp, academicsValidators.Course(), academicsControllers.UpdateCourse)
	courseGroup.Delete("/:id", teacherUp, academicsControllers.DeleteCourse)
}
