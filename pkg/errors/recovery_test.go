package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	t.Run("panic becomes PanicError", func(t *testing.T) {
		err := func() (err error) {
			defer Recover(&err, "Classifier.PredictProba")
			panic("probability vector too short")
		}()

		var panicErr *PanicError
		require.ErrorAs(t, err, &panicErr)
		assert.Equal(t, "Classifier.PredictProba", panicErr.Operation)
		assert.Equal(t, "probability vector too short", panicErr.PanicValue)
		assert.NotEmpty(t, panicErr.StackTrace)
		assert.EqualError(t, panicErr, "panic in Classifier.PredictProba: probability vector too short")
	})

	t.Run("no panic", func(t *testing.T) {
		err := func() (err error) {
			defer Recover(&err, "Classifier.PredictProba")
			return nil
		}()
		assert.NoError(t, err)
	})

	t.Run("existing error kept in chain", func(t *testing.T) {
		original := fmt.Errorf("concept 3 has no statistics")
		err := func() (err error) {
			defer Recover(&err, "Regressor.Predict")
			err = original
			panic("after error")
		}()

		assert.ErrorIs(t, err, original)
		assert.ErrorContains(t, err, "panic in Regressor.Predict")
		assert.ErrorContains(t, err, "concept 3 has no statistics")
	})
}

func TestRecoverPanicValues(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "string panic", "string panic"},
		{"int", 42, "42"},
		{"error", fmt.Errorf("error as panic"), "error as panic"},
		{"nil", nil, "panic called with nil argument"},
		{"struct", struct{ Msg string }{"struct message"}, "{struct message}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := func() (err error) {
				defer Recover(&err, "TypeTest")
				panic(tt.value)
			}()

			var panicErr *PanicError
			require.ErrorAs(t, err, &panicErr)
			assert.Contains(t, fmt.Sprintf("%v", panicErr.PanicValue), tt.want)
		})
	}
}

func TestSafeExecute(t *testing.T) {
	assert.NoError(t, SafeExecute("Tracer.Trace", func() error { return nil }))

	cause := errors.New("unknown attribute")
	assert.Same(t, cause, SafeExecute("Tracer.Trace", func() error { return cause }))

	err := SafeExecute("Tracer.Trace", func() error {
		var bottoms [][]int
		_ = bottoms[1]
		return nil
	})
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "Tracer.Trace", panicErr.Operation)

	var runtimeErr interface{ RuntimeError() }
	assert.ErrorAs(t, err, &runtimeErr, "runtime error stays reachable through Unwrap")
}

func TestPanicErrorString(t *testing.T) {
	panicErr := NewPanicError("Regressor.Predict", "bad index")

	assert.Contains(t, panicErr.String(), "panic in Regressor.Predict: bad index")
	assert.Contains(t, panicErr.String(), "Stack trace:")
	assert.Nil(t, panicErr.Unwrap())
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("Tracer.Trace", func() error { return nil })
	}
}
