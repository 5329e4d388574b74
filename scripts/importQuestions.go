package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"virtualab/config"
	reviewController "virtualab/controllers/review"
	"virtualab/database"
	"virtualab/models"
	exerciseValidator "virtualab/validators/exercise"
)

// Imports questions for one exercise from a CSV file with the columns
// question_text, options and answer_keys. Options and keys are separated by "|".
func main() {
	exerciseID := flag.Uint("exercise", 0, "exercise id to append questions to")
	path := flag.String("file", "questions.csv", "CSV file to import")
	flag.Parse()

	if *exerciseID == 0 {
		log.Fatal("-exercise is required")
	}

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()
	defer database.Close()

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	questions, skipped, err := readQuestions(file, uint(*exerciseID))
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	log.Printf("Rows to import: %d, skipped: %d", len(questions), skipped)

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var exercise models.Exercise
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&exercise, *exerciseID).Error; err != nil {
			return fmt.Errorf("load exercise %d: %w", *exerciseID, err)
		}

		var stored int64
		if err := tx.Model(&models.Question{}).Where("exercise_id = ?", exercise.ID).Count(&stored).Error; err != nil {
			return err
		}
		if stored+int64(len(questions)) > int64(exercise.QuestionCount) {
			return fmt.Errorf("exercise allows %d questions, %d stored, %d in file",
				exercise.QuestionCount, stored, len(questions))
		}

		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		return reviewController.ApplyEvent(tx, &exercise, models.EventSubmit, exercise.AuthorID)
	})
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", len(questions))
}

// readQuestions parses the CSV in r. Rows without text, with fewer than two
// options or with keys outside the options are skipped and counted.
func readQuestions(r io.Reader, exerciseID uint) ([]models.Question, int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) < 2 {
		return nil, 0, fmt.Errorf("CSV file is empty or has only headers")
	}

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}

	var questions []models.Question
	skipped := 0
	for i, row := range records[1:] {
		text := getField(row, headerIndex, "question_text")
		options := splitList(getField(row, headerIndex, "options"))
		keys := splitList(getField(row, headerIndex, "answer_keys"))

		if text == "" || len(options) < 2 || len(keys) == 0 || !exerciseValidator.KeysAreOptions(keys, options) {
			log.Printf("Skipping row %d: incomplete question", i+2)
			skipped++
			continue
		}

		questions = append(questions, models.Question{
			ExerciseID:   exerciseID,
			QuestionText: text,
			OptionText:   datatypes.JSONSlice[string](options),
			AnswerKeys:   datatypes.JSONSlice[string](keys),
		})
	}
	if len(questions) == 0 {
		return nil, skipped, fmt.Errorf("no valid questions in file")
	}
	return questions, skipped, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
