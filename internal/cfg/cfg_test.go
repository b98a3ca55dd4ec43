package cfg

import (
	"testing"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKafkaCfgDisabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := loadKafkaCfg()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadKafkaCfgRejectsEmptyBrokerList(t *testing.T) {
	for _, value := range []string{",", " , ", ",,"} {
		t.Setenv("KAFKA_BROKERS", value)

		_, err := loadKafkaCfg()
		assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable, "value %q", value)
	}
}

func TestLoadKafkaCfgParsesBrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := loadKafkaCfg()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, "recommendation-events", cfg.Topic)
}
