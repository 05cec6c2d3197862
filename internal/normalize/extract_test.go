package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-compass/internal/domain"
)

func TestParseStrict(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		v, err := parseStrict(`[{"question":"Q1"}]`, shapeArray)
		require.NoError(t, err)
		assert.Len(t, v, 1)
	})

	t.Run("object", func(t *testing.T) {
		v, err := parseStrict(`{"name":"Go"}`, shapeObject)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Go"}, v)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := parseStrict(`{"name":"Go"}`, shapeArray)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a JSON array")
	})

	t.Run("prose is rejected", func(t *testing.T) {
		_, err := parseStrict(`Sure! [1]`, shapeArray)
		assert.Error(t, err)
	})
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  jsonShape
		check func(t *testing.T, v any)
	}{
		{
			name:  "array in prose",
			input: `Sure! Here are your questions: [{"question":"Q1","options":["a","b","c","d"],"correctAnswer":"B"}] Hope that helps!`,
			want:  shapeArray,
			check: func(t *testing.T, v any) {
				items := v.([]any)
				require.Len(t, items, 1)
				assert.Equal(t, "Q1", items[0].(map[string]any)["question"])
			},
		},
		{
			name:  "nested arrays need the greedy match",
			input: `Result: [{"options":["a","b"]},{"options":["c","d"]}] done`,
			want:  shapeArray,
			check: func(t *testing.T, v any) {
				assert.Len(t, v.([]any), 2)
			},
		},
		{
			name:  "trailing bracket in prose needs the balanced scan",
			input: `Here: [[1,2],[3]] (see [note]`,
			want:  shapeArray,
			check: func(t *testing.T, v any) {
				assert.Equal(t, []any{[]any{float64(1), float64(2)}, []any{float64(3)}}, v)
			},
		},
		{
			name:  "brackets inside strings are ignored",
			input: `ok {"name":"Go {advanced}","level":1} and {more}`,
			want:  shapeObject,
			check: func(t *testing.T, v any) {
				assert.Equal(t, "Go {advanced}", v.(map[string]any)["name"])
			},
		},
		{
			name:  "object in prose",
			input: `The course is {"name":"Go"} as requested.`,
			want:  shapeObject,
			check: func(t *testing.T, v any) {
				assert.Equal(t, "Go", v.(map[string]any)["name"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, strictErr := parseStrict(tt.input, tt.want)
			require.Error(t, strictErr)

			v, err := parseFallback(tt.input, tt.want, nil)
			require.NoError(t, err)
			tt.check(t, v)
		})
	}

	t.Run("no candidate", func(t *testing.T) {
		_, err := parseFallback("nothing here", shapeArray, nil)
		assert.ErrorIs(t, err, errNoCandidate)
	})
}

func TestExtractArray_SkipsNonObjectCandidates(t *testing.T) {
	text := `Here are [3] questions: [{"question":"Real Q","options":["a","b","c","d"],"correctAnswer":"B"}]`

	items, err := ExtractArray(text)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Real Q", items[0].(map[string]any)["question"])
}

func TestExtractArray_OnlyNonObjectCandidates(t *testing.T) {
	_, err := ExtractArray(`I picked [1, 2] and [3] for you`)

	var malformed *domain.MalformedAIResponseError
	require.True(t, errors.As(err, &malformed))
	assert.ErrorContains(t, err, "not an object")
}

func TestExtractArray_Malformed(t *testing.T) {
	text := `Sorry, I cannot help with that [unfinished`
	_, err := ExtractArray(text)
	require.Error(t, err)

	var malformed *domain.MalformedAIResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, text, malformed.Text)
}

func TestExtractObject_RejectsArray(t *testing.T) {
	_, err := ExtractObject(`[1,2,3]`)
	var malformed *domain.MalformedAIResponseError
	assert.True(t, errors.As(err, &malformed))
}
