// Package configs holds static data shipped with the binaries.
package configs

import "embed"

// QuestionBankPath is the location of the curated question bank inside SeedData.
const QuestionBankPath = "seed_data/question_bank.json"

//go:embed seed_data/question_bank.json
var SeedData embed.FS
