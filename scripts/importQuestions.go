package main

import (
	"encoding/csv"
	"lams/config"
	"lams/database"
	"lams/models"
	"log"
	"os"
	"strconv"
	"strings"
)

// Bulk-imports questions from a CSV exported by the content team. Expected
// columns: content, difficulty, topicId, answer1..answer4, correct (1-based
// index of the correct option). Run from the repo root:
//
//	go run scripts/importQuestions.go Questions.csv
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	path := "Questions.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%1000 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		content := getField(row, headerIndex, "content")
		if content == "" {
			skipped++
			continue
		}

		difficulty := strings.ToLower(getField(row, headerIndex, "difficulty"))
		switch difficulty {
		case models.DifficultyEasy, models.DifficultyModerate, models.DifficultyDifficult:
		default:
			difficulty = models.DifficultyEasy
		}

		question := models.Question{
			Content:         content,
			DifficultyLevel: difficulty,
		}
		if topicId := parseInt(getField(row, headerIndex, "topicId")); topicId > 0 {
			id := uint(topicId)
			question.TopicID = &id
		}

		correct := parseInt(getField(row, headerIndex, "correct"))
		for n := 1; n <= 4; n++ {
			answer := getField(row, headerIndex, "answer"+strconv.Itoa(n))
			if answer == "" {
				continue
			}
			question.Answers = append(question.Answers, models.Answer{
				Content:   answer,
				IsCorrect: n == correct,
			})
		}

		// A question without options is unusable
		if len(question.Answers) == 0 {
			skipped++
			continue
		}

		// Skip duplicates by content so re-runs are safe
		var existing models.Question
		result := database.Database.Db.Where("content = ?", question.Content).First(&existing)
		if result.Error == nil {
			skipped++
			continue
		}

		if err := database.Database.Db.Create(&question).Error; err != nil {
			log.Printf("Error inserting question at row %d: %v", i+2, err)
			continue
		}
		inserted++
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseInt converts string to int
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}
