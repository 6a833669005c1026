package rutts_test

import (
	"strings"
	"testing"

	"github.com/poretsky/ru-tts/pkg/rutts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsAllNeutralPercentages(t *testing.T) {
	cfg := rutts.DefaultConfig()
	assert.Equal(t, 100, cfg.GeneralGapFactor)
	assert.Equal(t, 100, cfg.CommaGap)
	assert.Equal(t, 100, cfg.DotGap)
	assert.Equal(t, 100, cfg.SemicolonGap)
	assert.Equal(t, 100, cfg.ColonGap)
	assert.Equal(t, 100, cfg.QuestionGap)
	assert.Equal(t, 100, cfg.ExclamationGap)
	assert.Equal(t, 100, cfg.DashGap)
	assert.Equal(t, uint(rutts.DecSepPoint|rutts.DecSepComma), cfg.Flags)
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	yaml := `
speech_rate: 200
flags: 4
`
	cfg, err := rutts.LoadConfig(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.SpeechRate, "given field must override the default")
	assert.Equal(t, uint(rutts.UseAlternativeVoice), cfg.Flags)
	assert.Equal(t, 100, cfg.GeneralGapFactor, "fields absent from the document keep DefaultConfig's value")
	assert.Equal(t, 100, cfg.Intonation)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	yaml := `bogus_field: 1`
	_, err := rutts.LoadConfig(strings.NewReader(yaml))
	require.Error(t, err)
}
