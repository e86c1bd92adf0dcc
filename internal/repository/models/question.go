package models

import "time"

// Question is a row of the questions table.
type Question struct {
	ID            int64     `db:"id"`
	Topic         string    `db:"topic"`
	QuestionText  string    `db:"question_text"`
	OptionA       string    `db:"option_a"`
	OptionB       string    `db:"option_b"`
	OptionC       string    `db:"option_c"`
	OptionD       string    `db:"option_d"`
	CorrectOption string    `db:"correct_option"`
	CreatedAt     time.Time `db:"created_at"`
}

// QuestionUsage is a row of the question_usage table.
type QuestionUsage struct {
	ID         int64     `db:"id"`
	UserEmail  string    `db:"user_email"`
	Topic      string    `db:"topic"`
	QuestionID int64     `db:"question_id"`
	UsedAt     time.Time `db:"used_at"`
}
