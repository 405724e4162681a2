package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRequiredCount(t *testing.T) {
	cases := []struct {
		name          string
		contentType   ContentType
		duration      *int
		transcriptLen int
		want          int
	}{
		{"just under one hour", TypeQuiz, intPtr(3599), 100000, 10},
		{"exactly one hour steps up", TypeQuiz, intPtr(3600), 100000, 15},
		{"two hours", TypeQuiz, intPtr(7200), 100000, 20},
		{"three hours and beyond", TypeQuiz, intPtr(10800), 100000, 25},
		{"floor applies when duration rounds low", TypeQuiz, nil, 1750, 5},
		{"long video but thin transcript", TypeQuiz, intPtr(36000), 700, 5},
		{"transcript is the binding bound", TypeQuiz, intPtr(5400), 4000, 11},
		{"unknown duration uses transcript only", TypeQuiz, nil, 7000, 20},
		{"qa packs denser than quiz", TypeQA, intPtr(5400), 4000, 15},
		{"empty transcript still hits the floor", TypeQA, nil, 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RequiredCount(tc.contentType, tc.duration, tc.transcriptLen)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequiredCountNeverBelowMinimum(t *testing.T) {
	for _, ct := range []ContentType{TypeQuiz, TypeQA} {
		assert.GreaterOrEqual(t, RequiredCount(ct, nil, 0), MinItemCount)
		assert.GreaterOrEqual(t, RequiredCount(ct, intPtr(1), 1), MinItemCount)
	}
}
