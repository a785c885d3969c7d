package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkroute/storefront_api/internal/utils"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"fresh", "organic"}, ParseTags("fresh, organic"))
	assert.Equal(t, []string{"a"}, ParseTags(",a,,"))
	assert.Empty(t, ParseTags("  "))
}

func TestParseFeaturesJSONArray(t *testing.T) {
	features, err := ParseFeatures(`["Daily delivery", " Free paneer "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Daily delivery", "Free paneer"}, features)
}

func TestParseFeaturesMalformedJSONIsValidationError(t *testing.T) {
	_, err := ParseFeatures(`["unterminated`)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrInvalidFeatureList)
}

func TestParseFeaturesCommaText(t *testing.T) {
	features, err := ParseFeatures("Daily delivery, Priority support")
	require.NoError(t, err)
	assert.Equal(t, []string{"Daily delivery", "Priority support"}, features)
}

func TestParseFeaturesNewlineText(t *testing.T) {
	features, err := ParseFeatures("Daily delivery\nPriority support\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Daily delivery", "Priority support"}, features)
}

func TestParseFeaturesEmpty(t *testing.T) {
	features, err := ParseFeatures("   ")
	require.NoError(t, err)
	assert.Empty(t, features)
}
