package quizgen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	const arr = `[{"question":"2+2?","options":["1","2","3","4"],"correct_option":"D"}]`

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare array", arr, arr, true},
		{"fenced block", "Here you go:\n```json\n" + arr + "\n```\nGood luck!", arr, true},
		{"fenced upper case tag", "```JSON\n" + arr + "\n```", arr, true},
		{"prefers fenced block", "ignore [1, 2]\n```json\n" + arr + "\n```", arr, true},
		{"surrounded by prose", "Sure! " + arr + " Hope this helps.", arr, true},
		{"think preamble", "<think>maybe [x]</think>\n" + arr, arr, true},
		{"no array", "I cannot help with that.", "", false},
		{"invalid json", "[{\"question\": }]", "", false},
		{"reversed brackets", "] oops [", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeQuestions(t *testing.T) {
	raw := `[
		{"question":"  What is 5*5? ","options":[" 20","25 ","30","35"],"correct_option":"b"},
		{"question":"Camel case key","options":["a","b","c","d"],"correctOption":" c "},
		{"question":12,"options":[1,2,3,4],"correct_option":"A"},
		{"question":"Three options","options":["a","b","c"],"correct_option":"A"},
		{"question":"Blank option","options":["a","","c","d"],"correct_option":"A"},
		{"question":"Bad letter","options":["a","b","c","d"],"correct_option":"E"},
		{"question":"","options":["a","b","c","d"],"correct_option":"A"},
		{"question":"Options not a list","options":"a,b,c,d","correct_option":"A"},
		{"question":"No answer","options":["a","b","c","d"]},
		"not an object"
	]`
	var items []json.RawMessage
	assert.NoError(t, json.Unmarshal([]byte(raw), &items))

	got := NormalizeQuestions(items, "Maths")
	if assert.Len(t, got, 3) {
		assert.Equal(t, "What is 5*5?", got[0].Text)
		assert.Equal(t, [4]string{"20", "25", "30", "35"}, got[0].Options)
		assert.Equal(t, "B", got[0].CorrectOption)
		assert.Equal(t, "Maths", got[0].Topic)

		assert.Equal(t, "C", got[1].CorrectOption)

		assert.Equal(t, "12", got[2].Text)
		assert.Equal(t, [4]string{"1", "2", "3", "4"}, got[2].Options)
	}
}

func TestParseQuestions(t *testing.T) {
	two := `[{"question":"Q1","options":["a","b","c","d"],"correct_option":"A"},
		{"question":"Q2","options":["a","b","c","d"],"correct_option":"B"}]`

	qs, err := parseQuestions(two, "Logic", 1)
	assert.NoError(t, err)
	assert.Len(t, qs, 1)

	_, err = parseQuestions(two, "Logic", 3)
	var short *insufficientError
	assert.ErrorAs(t, err, &short)
	assert.EqualError(t, err, "AI returned only 2/3 valid questions")

	_, err = parseQuestions("[]", "Logic", 1)
	assert.Error(t, err)

	_, err = parseQuestions("nothing here", "Logic", 1)
	assert.Error(t, err)
}
