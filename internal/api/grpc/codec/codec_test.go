package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSON_Registered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestJSON_NullSurvives(t *testing.T) {
	type msg struct {
		Scores map[string]*float64 `json:"scores"`
	}

	var got msg
	require.NoError(t, JSON{}.Unmarshal([]byte(`{"scores":{"diemGK":null}}`), &got))

	v, ok := got.Scores["diemGK"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestJSON_EmptyPayload(t *testing.T) {
	var got struct{ A int }
	assert.NoError(t, JSON{}.Unmarshal(nil, &got))
	assert.Zero(t, got.A)
}

func TestJSON_Errors(t *testing.T) {
	_, err := JSON{}.Marshal(make(chan int))
	assert.Error(t, err)

	var got struct{ A int }
	assert.Error(t, JSON{}.Unmarshal([]byte("{"), &got))
}
