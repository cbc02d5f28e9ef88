package validation_test

import (
	"strings"
	"testing"

	"foodgram/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	for _, ok := range []string{"chef", "chef.bob", "a@b", "x+y-z_1", "meme", "Иван", "josé", "jose\u0301", "用户_2"} {
		assert.True(t, validation.ValidUsername(ok), ok)
	}
	for _, bad := range []string{"me", "", "with space", "semi;colon", "slash/name", "Иван Петров", "emoji😀"} {
		assert.False(t, validation.ValidUsername(bad), bad)
	}
}

type signup struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
	Minutes  int    `json:"cooking_time" validate:"gte=1"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, validation.Struct(signup{Username: "chef", Slug: "hot-dish_1", Minutes: 1}))

	fe := validation.Struct(signup{Username: "me", Minutes: 1})
	require.NotNil(t, fe)
	assert.Equal(t, "username", fe.Field)
	assert.Equal(t, "username", fe.Tag)

	fe = validation.Struct(signup{Username: strings.Repeat("a", 151), Minutes: 1})
	require.NotNil(t, fe)
	assert.Equal(t, "max", fe.Tag)
	assert.Contains(t, fe.Message, "150")

	fe = validation.Struct(signup{Username: "chef", Slug: "no spaces", Minutes: 1})
	require.NotNil(t, fe)
	assert.Equal(t, "slug", fe.Field)

	fe = validation.Struct(signup{Username: "chef", Minutes: 0})
	require.NotNil(t, fe)
	assert.Equal(t, "cooking_time", fe.Field)
	assert.Equal(t, "Ensure this value is greater than or equal to 1.", fe.Message)

	// The first failing field is reported.
	fe = validation.Struct(signup{})
	require.NotNil(t, fe)
	assert.Equal(t, "username", fe.Field)
	assert.Equal(t, "This field is required.", fe.Message)
}
